package store

import "errors"

// Sentinel errors returned by token store methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNoStoredToken is returned by Load when the token file is absent,
	// cannot be parsed, or does not contain both a token string and an
	// expiry. It signals a recoverable cache miss: the caller proceeds by
	// fetching a fresh token.
	ErrNoStoredToken = errors.New("no stored batch token")
)

package models

import "time"

// BatchToken is the short-lived credential presented on every upload request.
//
// It is issued by the token endpoint together with its expiry instant.
// Tokens are replaced as a whole when refreshed and never mutated in place,
// so a value can be shared safely between concurrent upload goroutines.
//
// The JSON tags define both the token-file format and the shape the token
// endpoint reports, so a persisted token round-trips without translation.
type BatchToken struct {
	// Token is the opaque credential string sent as the bearer token of
	// upload requests. Its internal structure is never inspected.
	Token string `json:"token"`

	// ExpiresAt is the instant the token stops being usable.
	// The host reports it with nanosecond precision.
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether the token can still be used at the given instant.
// A token whose expiry equals now is already expired, and a token with an
// empty credential string is never valid.
func (t BatchToken) Valid(now time.Time) bool {
	return t.Token != "" && now.Before(t.ExpiresAt)
}

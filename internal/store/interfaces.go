// Package store keeps the batch token between uploads and between runs.
//
// The in-memory cache is the authority during a run; the token file only
// exists so a later invocation can pick up a still-valid token instead of
// requesting a fresh one.
package store

import (
	"time"

	"github.com/MKhiriev/go-image-uploader/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/token_store_mock.go -package=mock

// TokenStore caches the current batch token and moves it to and from disk.
// Implementations must be safe for concurrent use.
type TokenStore interface {
	// Get returns the cached token if it is still valid at the given
	// instant. A missing, empty, or expired token reports false, telling
	// the caller to refresh.
	Get(now time.Time) (models.BatchToken, bool)

	// Set replaces the cached token atomically. The previous token is
	// discarded as a whole; tokens are never mutated in place.
	Set(token models.BatchToken)

	// Persist writes the token to the file at path so a later run can
	// reuse it. The file is replaced atomically.
	Persist(path string, token models.BatchToken) error

	// Load reads a previously persisted token from the file at path.
	// An absent file, unreadable JSON, or missing fields all return an
	// error wrapping [ErrNoStoredToken]; callers treat any of them as a
	// cache miss, never as a fatal failure.
	Load(path string) (models.BatchToken, error)
}

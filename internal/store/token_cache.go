package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/go-image-uploader/internal/logger"
	"github.com/MKhiriev/go-image-uploader/models"
)

type tokenCache struct {
	mu    sync.RWMutex
	token models.BatchToken

	logger *logger.Logger
}

// NewTokenCache constructs the default [TokenStore]: a mutex-guarded
// in-memory cache with JSON file persistence.
func NewTokenCache(logger *logger.Logger) TokenStore {
	return &tokenCache{logger: logger}
}

// Get implements [TokenStore]. Expiry is checked strictly: a token whose
// expiry equals now is already a miss.
func (c *tokenCache) Get(now time.Time) (models.BatchToken, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.token.Valid(now) {
		return models.BatchToken{}, false
	}

	return c.token, true
}

// Set implements [TokenStore].
func (c *tokenCache) Set(token models.BatchToken) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Persist implements [TokenStore]. The token is written to a temp file in
// the target directory and moved into place with a rename, so a concurrent
// reader never observes a torn file.
func (c *tokenCache) Persist(path string, token models.BatchToken) error {
	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("serialize batch token: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}

	if _, err = tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write token file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close token file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace token file: %w", err)
	}

	c.logger.Debug().Str("path", path).Msg("batch token persisted")
	return nil
}

// Load implements [TokenStore]. Every failure mode wraps [ErrNoStoredToken]
// so the caller can recover with a single errors.Is check.
func (c *tokenCache) Load(path string) (models.BatchToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.BatchToken{}, fmt.Errorf("%w: %v", ErrNoStoredToken, err)
	}

	var token models.BatchToken
	if err = json.Unmarshal(data, &token); err != nil {
		return models.BatchToken{}, fmt.Errorf("%w: %v", ErrNoStoredToken, err)
	}

	if token.Token == "" || token.ExpiresAt.IsZero() {
		return models.BatchToken{}, fmt.Errorf("%w: token file missing token or expiry", ErrNoStoredToken)
	}

	return token, nil
}

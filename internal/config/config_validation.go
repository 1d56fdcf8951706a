// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel-wrapped error
// naming the offending group otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Account.ID == "" || cfg.Account.APIKey == "" {
		return fmt.Errorf("%w: account id and api key are required", ErrInvalidAccountConfigs)
	}

	if cfg.Upload.BatchSize < 1 {
		return fmt.Errorf("%w: batch size must be at least 1, got %d", ErrInvalidUploadConfigs, cfg.Upload.BatchSize)
	}

	if cfg.HTTP.APIBaseURL == "" || cfg.HTTP.UploadBaseURL == "" {
		return fmt.Errorf("%w: endpoint base URLs are required", ErrInvalidHTTPConfigs)
	}
	if cfg.HTTP.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidHTTPConfigs)
	}

	if len(cfg.Run.Inputs) == 0 {
		return ErrNoInputsProvided
	}

	return nil
}

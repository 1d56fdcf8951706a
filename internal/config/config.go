// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-image-uploader application. It aggregates all sub-configurations and is
// populated by merging values from command-line flags, environment variables
// (optionally extended from a dotenv file), and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Account holds the remote account credentials used to request
	// batch tokens.
	Account Account `envPrefix:"CF_"`

	// Upload holds batching, token persistence, and record defaults.
	Upload Upload `envPrefix:"UPLOAD_"`

	// HTTP holds endpoint addresses and timeouts for outbound requests.
	HTTP HTTP `envPrefix:"HTTP_"`

	// Run holds parameters of a single invocation: input paths, report
	// destination, and output verbosity. Populated from flags only.
	Run Run

	// EnvFilePath is the optional path to a dotenv file whose variables
	// are loaded into the environment before env parsing runs.
	// Populated via the -env flag.
	EnvFilePath string
}

// Account holds the credentials identifying the remote account.
type Account struct {
	// ID is the remote account identifier under which images are stored.
	// Env: CF_ACCOUNT_ID
	ID string `env:"ACCOUNT_ID"`

	// APIKey is the key presented to the token endpoint when requesting
	// a batch token. Must be kept confidential.
	// Env: CF_API_KEY
	APIKey string `env:"API_KEY"`
}

// Upload groups batching and token persistence settings.
type Upload struct {
	// BatchSize is the number of images uploaded concurrently in one
	// batch. Batches run strictly one after another.
	// Env: UPLOAD_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// TokenFile is the path the batch token is cached at between runs.
	// An empty value disables persistence.
	// Env: UPLOAD_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`

	// RequireSignedURLs marks every gathered record so the host serves
	// it only through signed delivery URLs.
	// Env: UPLOAD_REQUIRE_SIGNED_URLS
	RequireSignedURLs bool `env:"REQUIRE_SIGNED_URLS"`

	// Recursive descends into subdirectories when gathering images from
	// directory inputs.
	// Env: UPLOAD_RECURSIVE
	Recursive bool `env:"RECURSIVE"`
}

// HTTP holds endpoint and timeout settings for the outbound transport layer.
type HTTP struct {
	// APIBaseURL is the base URL of the account API that issues batch
	// tokens.
	// Env: HTTP_API_BASE_URL
	APIBaseURL string `env:"API_BASE_URL"`

	// UploadBaseURL is the base URL of the batch upload endpoint.
	// Env: HTTP_UPLOAD_BASE_URL
	UploadBaseURL string `env:"UPLOAD_BASE_URL"`

	// RequestTimeout is the maximum duration allowed for a single
	// outbound request before it is cancelled (e.g. "10s", "1m").
	// Env: HTTP_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// UserAgent identifies the uploader on every outbound request.
	// Env: HTTP_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
}

// Run holds single-invocation parameters. These only make sense on the
// command line, so no env tags are defined.
type Run struct {
	// Inputs are the image files and directories to upload, in the order
	// given. The value "-" makes the application read paths from stdin.
	Inputs []string

	// OutputFile is the file the JSON report is written to.
	// Empty means stdout.
	OutputFile string

	// Quiet suppresses informational log output; warnings and errors
	// still surface.
	Quiet bool
}

// GetConfig loads, merges, and validates the application configuration from
// all available sources in the following priority order (first source wins
// for non-zero fields):
//  1. Command-line flags
//  2. Environment variables, after loading the dotenv file named by the
//     -env flag (if any)
//  3. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags().
		withDotenv().
		withEnv().
		withDefaults().
		build()
}

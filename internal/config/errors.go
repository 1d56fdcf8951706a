package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAccountConfigs indicates missing remote account settings
	// (account identifier or api key).
	ErrInvalidAccountConfigs = errors.New("invalid account configuration")
	// ErrInvalidUploadConfigs indicates invalid batching settings
	// (for example, a batch size below one).
	ErrInvalidUploadConfigs = errors.New("invalid upload configuration")
	// ErrInvalidHTTPConfigs indicates invalid outbound transport settings
	// (for example, an empty endpoint base URL or negative timeout).
	ErrInvalidHTTPConfigs = errors.New("invalid http configuration")
	// ErrNoInputsProvided indicates that no files or directories were
	// given to upload.
	ErrNoInputsProvided = errors.New("no input files or directories provided")
)

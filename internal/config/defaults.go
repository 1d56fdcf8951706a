package config

import "time"

// Default values applied as the lowest-priority configuration source when
// neither flags nor environment variables provide them.
const (
	// DefaultAPIBaseURL is the base URL of the account API that issues
	// batch tokens.
	DefaultAPIBaseURL = "https://api.cloudflare.com/client/v4"

	// DefaultUploadBaseURL is the base URL of the batch upload endpoint.
	DefaultUploadBaseURL = "https://batch.imagedelivery.net"

	// DefaultBatchSize is the number of images uploaded in one batch.
	DefaultBatchSize = 100

	// DefaultTokenFile is the working-directory file the batch token is
	// cached in between runs.
	DefaultTokenFile = ".cftoken"

	// DefaultRequestTimeout bounds every single outbound request.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultUserAgent identifies the uploader to the remote host.
	DefaultUserAgent = "go-image-uploader/0.0.1"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Upload: Upload{
			BatchSize: DefaultBatchSize,
			TokenFile: DefaultTokenFile,
		},
		HTTP: HTTP{
			APIBaseURL:     DefaultAPIBaseURL,
			UploadBaseURL:  DefaultUploadBaseURL,
			RequestTimeout: DefaultRequestTimeout,
			UserAgent:      DefaultUserAgent,
		},
	}
}

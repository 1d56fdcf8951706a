package config

import (
	"errors"
	"flag"
	"strings"
	"time"
)

// PathList collects repeatable path arguments in the order they were given.
// It implements the flag.Value interface.
type PathList []string

// String returns the comma-joined list of collected paths.
func (p *PathList) String() string {
	return strings.Join(*p, ",")
}

// Set appends one path to the list. Blank values are rejected.
func (p *PathList) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("empty path")
	}

	*p = append(*p, s)
	return nil
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-i/-images image file or directory to upload, repeatable; "-" reads paths from stdin
//	-o/-output file the JSON report is written to (stdout by default)
//	-batch-size number of images uploaded in a single batch
//	-q/-quiet suppress informational output
//	-env dotenv file to load credentials from
//	-account remote account identifier
//	-key api key used to request batch tokens
//	-token-file path for the cached batch token
//	-require-signed-urls request signed delivery URLs for every upload
//	-r/-recursive descend into subdirectories when gathering images
//	-timeout per-request timeout (e.g., "10s", "1m")
func ParseFlags() *StructuredConfig {
	var inputs PathList
	var outputFile string
	var batchSize int
	var quiet bool
	var envFilePath string
	var accountID string
	var apiKey string
	var tokenFile string
	var requireSignedURLs bool
	var recursive bool
	var requestTimeout time.Duration

	flag.Var(&inputs, "i", "Image file or directory to upload (repeatable)")
	flag.Var(&inputs, "images", "Image file or directory to upload (alias)")
	flag.StringVar(&outputFile, "o", "", "Write the JSON report to this file instead of stdout")
	flag.StringVar(&outputFile, "output", "", "Write the JSON report to this file (alias)")
	flag.IntVar(&batchSize, "batch-size", 0, "Number of images to upload in a single batch")
	flag.BoolVar(&quiet, "q", false, "Suppress informational output")
	flag.BoolVar(&quiet, "quiet", false, "Suppress informational output (alias)")
	flag.StringVar(&envFilePath, "env", "", "Dotenv file to load credentials from")
	flag.StringVar(&accountID, "account", "", "Account identifier")
	flag.StringVar(&apiKey, "key", "", "API key used to request batch tokens")
	flag.StringVar(&tokenFile, "token-file", "", "Path for the cached batch token")
	flag.BoolVar(&requireSignedURLs, "require-signed-urls", false, "Request signed delivery URLs for uploads")
	flag.BoolVar(&recursive, "r", false, "Descend into subdirectories when gathering images")
	flag.BoolVar(&recursive, "recursive", false, "Descend into subdirectories (alias)")
	flag.DurationVar(&requestTimeout, "timeout", 0, "Per-request timeout (e.g., 10s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		Account: Account{
			ID:     accountID,
			APIKey: apiKey,
		},
		Upload: Upload{
			BatchSize:         batchSize,
			TokenFile:         tokenFile,
			RequireSignedURLs: requireSignedURLs,
			Recursive:         recursive,
		},
		HTTP: HTTP{
			RequestTimeout: requestTimeout,
		},
		Run: Run{
			Inputs:     []string(inputs),
			OutputFile: outputFile,
			Quiet:      quiet,
		},
		EnvFilePath: envFilePath,
	}
}

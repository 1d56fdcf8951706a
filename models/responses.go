package models

import "encoding/json"

// APIResponse is the envelope the remote host wraps every payload in.
//
// Success signals whether the request was accepted; on rejection Errors
// carries the host-side reasons. Result stays raw so each caller can decode
// the payload shape it expects, a token grant or an upload result.
type APIResponse struct {
	// Success reports whether the host accepted the request.
	Success bool `json:"success"`

	// Errors lists host-side rejection reasons. Populated when Success
	// is false, normally empty otherwise.
	Errors []RemoteError `json:"errors"`

	// Messages carries informational notes from the host.
	Messages []string `json:"messages"`

	// Result is the operation payload, left undecoded until the caller
	// picks the concrete shape.
	Result json.RawMessage `json:"result"`
}

// RemoteError is one host-side rejection reason inside an [APIResponse].
type RemoteError struct {
	// Code is the host's numeric error code.
	Code int `json:"code"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`
}

// TokenGrant is the result payload of the batch-token endpoint.
type TokenGrant struct {
	// Token is the issued credential string.
	Token string `json:"token"`

	// ExpiresAt is the expiry instant in RFC 3339 form with sub-second
	// precision, for example "2025-02-10T07:01:55.497877534Z".
	ExpiresAt string `json:"expiresAt"`
}

// UploadResult is the result payload of a single accepted image upload.
type UploadResult struct {
	// ID is the identifier the host filed the image under.
	ID string `json:"id"`

	// Filename echoes the uploaded file name.
	Filename string `json:"filename"`

	// Uploaded is the host-side upload timestamp.
	Uploaded string `json:"uploaded"`

	// RequireSignedURLs echoes the delivery restriction flag.
	RequireSignedURLs bool `json:"requireSignedURLs"`

	// Variants lists the delivery URLs generated for the image.
	Variants []string `json:"variants"`
}

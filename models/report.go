package models

import "fmt"

// UploadReport aggregates the outcome of one bulk upload run. Every input
// record lands in exactly one of the two collections.
type UploadReport struct {
	// Uploaded maps the host-assigned identifier of every successful
	// upload to the record that produced it.
	Uploaded map[string]ImageUpload

	// Failures lists failed records in input order, each paired with the
	// error that caused it.
	Failures []UploadFailure
}

// NewUploadReport returns an empty report ready to absorb outcomes.
func NewUploadReport() *UploadReport {
	return &UploadReport{Uploaded: make(map[string]ImageUpload)}
}

// UploadFailure pairs a failed upload record with its cause.
type UploadFailure struct {
	// Record is the upload that failed.
	Record ImageUpload

	// Err is the failure cause. Wrapped sentinels stay reachable through
	// errors.Is and errors.As.
	Err error
}

// Error implements the error interface.
func (f UploadFailure) Error() string {
	return fmt.Sprintf("upload %s: %v", f.Record.Filepath, f.Err)
}

// Unwrap returns the underlying cause.
func (f UploadFailure) Unwrap() error {
	return f.Err
}

package adapter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-image-uploader/models"
)

var (
	ErrInvalidRecord     = errors.New("invalid upload record")
	ErrFileRead          = errors.New("cannot read image file")
	ErrTransport         = errors.New("transport failure")
	ErrRemoteRejected    = errors.New("rejected by remote host")
	ErrMalformedResponse = errors.New("malformed host response")
)

// RejectionError is returned when the host answers with a well-formed
// envelope whose success flag is false. It carries the host-side error list
// so callers can log or inspect the exact rejection reasons.
type RejectionError struct {
	// Operation names the rejected request, e.g. `upload cat.png`.
	Operation string

	// Errors is the host's error list from the response envelope.
	Errors []models.RemoteError
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s rejected by host", e.Operation)
	}

	reasons := make([]string, 0, len(e.Errors))
	for _, re := range e.Errors {
		reasons = append(reasons, fmt.Sprintf("%d: %s", re.Code, re.Message))
	}

	return fmt.Sprintf("%s rejected by host: %s", e.Operation, strings.Join(reasons, "; "))
}

// Unwrap ties the rejection to [ErrRemoteRejected] for errors.Is dispatch.
func (e *RejectionError) Unwrap() error {
	return ErrRemoteRejected
}

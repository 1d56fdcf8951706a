// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for communicating with the
// remote image host.
//
// The primary abstraction is [ImageHost], which decouples the service layer
// from the underlying protocol. The package ships an HTTP implementation
// ([NewHTTPImageHost]) backed by two resty clients, one for the account API
// that issues batch tokens and one for the batch upload endpoint.
//
// Error values defined in errors.go classify every failure a request can
// produce so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrTransport] for network and non-2xx failures,
// [ErrRemoteRejected] for envelopes with success set to false).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-image-uploader/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/image_host_mock.go -package=mock

// ImageHost defines transport-agnostic communication with the remote image
// host. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ImageHost interface {
	// SetToken stores the batch token that will be attached to all
	// subsequent upload requests. It is called after a successful
	// FetchBatchToken or after a persisted token has been loaded.
	SetToken(token string)

	// Token returns the batch token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// FetchBatchToken requests a fresh batch token for the given account,
	// authenticating with the api key. Returns the token together with
	// its expiry. Any failure, transport, rejection, or malformed
	// response, makes the token unavailable, so callers treat every
	// error from this method as fatal for the run.
	FetchBatchToken(ctx context.Context, accountID, apiKey string) (models.BatchToken, error)

	// UploadImage sends one image file to the batch upload endpoint using
	// the stored batch token and returns the identifier the host assigned
	// to it. The record is validated before any file or network I/O, so a
	// contract violation ([ErrInvalidRecord]) never reaches the wire.
	// Errors are per-record: a failure affects only this upload.
	UploadImage(ctx context.Context, upload models.ImageUpload) (string, error)
}

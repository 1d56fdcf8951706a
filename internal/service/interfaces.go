// Package service implements the batch upload workflow on top of the adapter
// and store packages: token acquisition and reuse, batch splitting, concurrent
// per-record uploads, and result aggregation.
package service

import (
	"context"

	"github.com/MKhiriev/go-image-uploader/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/batch_uploader_mock.go -package=mock

// BatchUploader defines the contract for pushing a set of image records to the
// remote image host in ordered batches.
type BatchUploader interface {
	// UploadAll splits uploads into ordered batches of at most batchSize
	// records each and uploads them batch by batch, one goroutine per record
	// within a batch. Batches run strictly one after another.
	//
	// A missing or expired batch token is fetched once before the first batch
	// and reused for the whole run. Individual record failures never abort the
	// run; they are collected in the report's Failures in input order while
	// successful records land in the report's Uploaded map keyed by the
	// host-assigned image ID. UploadAll returns an error only when no work can
	// start at all: a batchSize below one or a failed token acquisition.
	UploadAll(ctx context.Context, uploads []models.ImageUpload, batchSize int) (*models.UploadReport, error)
}

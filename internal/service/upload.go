// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-image-uploader/internal/adapter"
	"github.com/MKhiriev/go-image-uploader/internal/config"
	"github.com/MKhiriev/go-image-uploader/internal/logger"
	"github.com/MKhiriev/go-image-uploader/internal/store"
	"github.com/MKhiriev/go-image-uploader/models"
)

type batchUploadService struct {
	host    adapter.ImageHost
	tokens  store.TokenStore
	account config.Account
	upload  config.Upload
	logger  *logger.Logger
}

// uploadOutcome pairs the host-assigned image ID, or the failure, with the
// batch slot of the record that produced it.
type uploadOutcome struct {
	remoteID string
	err      error
}

func NewBatchUploadService(host adapter.ImageHost, tokens store.TokenStore, account config.Account, upload config.Upload, log *logger.Logger) BatchUploader {
	return &batchUploadService{
		host:    host,
		tokens:  tokens,
		account: account,
		upload:  upload,
		logger:  log,
	}
}

func (s *batchUploadService) UploadAll(ctx context.Context, uploads []models.ImageUpload, batchSize int) (*models.UploadReport, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}

	// The token is checked before batching even when there is nothing to
	// upload, so an empty run still validates credentials.
	token, refreshed, err := s.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	report := models.NewUploadReport()

	batches := chunkUploads(uploads, batchSize)
	s.logger.Info().
		Int("records", len(uploads)).
		Int("batches", len(batches)).
		Int("batch_size", batchSize).
		Msg("starting batch upload")

	for i, batch := range batches {
		s.uploadBatch(ctx, batch, report)
		s.logger.Debug().Int("batch", i+1).Int("total", len(batches)).Msg("batch finished")
	}

	s.logger.Info().
		Int("uploaded", len(report.Uploaded)).
		Int("failed", len(report.Failures)).
		Msg("batch upload finished")

	if refreshed && len(report.Uploaded) > 0 && s.upload.TokenFile != "" {
		if err := s.tokens.Persist(s.upload.TokenFile, token); err != nil {
			s.logger.Warn().Err(err).Str("path", s.upload.TokenFile).Msg("cannot persist batch token")
		}
	}

	return report, nil
}

// ensureToken returns a batch token valid right now, fetching a fresh one from
// the host only on a cache miss. The boolean reports whether a fetch happened;
// a token served from the cache is never persisted again.
func (s *batchUploadService) ensureToken(ctx context.Context) (models.BatchToken, bool, error) {
	if token, ok := s.tokens.Get(time.Now().UTC()); ok {
		s.host.SetToken(token.Token)
		return token, false, nil
	}

	token, err := s.host.FetchBatchToken(ctx, s.account.ID, s.account.APIKey)
	if err != nil {
		return models.BatchToken{}, false, fmt.Errorf("%w: %v", ErrTokenAcquisition, err)
	}

	s.tokens.Set(token)
	s.host.SetToken(token.Token)
	return token, true, nil
}

// uploadBatch runs one goroutine per record and blocks until every one has
// finished. Outcomes are written into a slot per record, so a result can never
// be attributed to the wrong file no matter how the goroutines interleave.
func (s *batchUploadService) uploadBatch(ctx context.Context, batch []models.ImageUpload, report *models.UploadReport) {
	outcomes := make([]uploadOutcome, len(batch))

	var wg sync.WaitGroup
	for i := range batch {
		i := i // go directive is below 1.22, so keep a per-iteration copy
		wg.Add(1)
		go func() {
			defer wg.Done()
			remoteID, err := s.host.UploadImage(ctx, batch[i])
			outcomes[i] = uploadOutcome{remoteID: remoteID, err: err}
		}()
	}
	wg.Wait()

	for i, outcome := range outcomes {
		record := batch[i]
		if outcome.err != nil {
			s.logger.Error().Err(outcome.err).Str("filepath", record.Filepath).Msg("upload failed")
			report.Failures = append(report.Failures, models.UploadFailure{Record: record, Err: outcome.err})
			continue
		}
		report.Uploaded[outcome.remoteID] = record
		s.logger.Debug().Str("filepath", record.Filepath).Str("image_id", outcome.remoteID).Msg("uploaded")
	}
}

// chunkUploads splits uploads into consecutive slices of at most size records.
// The chunks share the backing array of uploads; concatenated in order they
// reproduce the input exactly.
func chunkUploads(uploads []models.ImageUpload, size int) [][]models.ImageUpload {
	batches := make([][]models.ImageUpload, 0, (len(uploads)+size-1)/size)
	for start := 0; start < len(uploads); start += size {
		end := start + size
		if end > len(uploads) {
			end = len(uploads)
		}
		batches = append(batches, uploads[start:end:end])
	}
	return batches
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-image-uploader/internal/adapter"
	"github.com/MKhiriev/go-image-uploader/internal/config"
	"github.com/MKhiriev/go-image-uploader/internal/logger"
	"github.com/MKhiriev/go-image-uploader/internal/mock"
	"github.com/MKhiriev/go-image-uploader/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubHost is a hand-rolled adapter.ImageHost for tests that need custom
// upload behavior, such as tracking concurrency, without mockgen call
// ordering getting in the way.
type stubHost struct {
	mu       sync.Mutex
	token    string
	fetchFn  func(ctx context.Context, accountID, apiKey string) (models.BatchToken, error)
	uploadFn func(ctx context.Context, upload models.ImageUpload) (string, error)
}

func (s *stubHost) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *stubHost) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *stubHost) FetchBatchToken(ctx context.Context, accountID, apiKey string) (models.BatchToken, error) {
	if s.fetchFn != nil {
		return s.fetchFn(ctx, accountID, apiKey)
	}
	return models.BatchToken{Token: "stub-tok", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *stubHost) UploadImage(ctx context.Context, upload models.ImageUpload) (string, error) {
	return s.uploadFn(ctx, upload)
}

// newTestUploadSvc builds a batchUploadService wired to gomock mocks.
func newTestUploadSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*batchUploadService,
	*mock.MockImageHost,
	*mock.MockTokenStore,
) {
	t.Helper()
	mockHost := mock.NewMockImageHost(ctrl)
	mockTokens := mock.NewMockTokenStore(ctrl)

	svc := NewBatchUploadService(
		mockHost,
		mockTokens,
		config.Account{ID: "acc-1", APIKey: "key-1"},
		config.Upload{BatchSize: 100, TokenFile: ".cftoken"},
		logger.Nop(),
	).(*batchUploadService)

	return svc, mockHost, mockTokens
}

func testRecords(paths ...string) []models.ImageUpload {
	records := make([]models.ImageUpload, 0, len(paths))
	for _, p := range paths {
		records = append(records, models.ImageUpload{Filepath: p})
	}
	return records
}

// ── chunkUploads ─────────────────────────────────────────────────────────────

func TestChunkUploads(t *testing.T) {
	tests := []struct {
		name      string
		records   int
		size      int
		wantSizes []int
	}{
		{name: "empty input yields no batches", records: 0, size: 3, wantSizes: nil},
		{name: "uneven split has short tail", records: 5, size: 2, wantSizes: []int{2, 2, 1}},
		{name: "exact multiple", records: 4, size: 2, wantSizes: []int{2, 2}},
		{name: "size above input yields one batch", records: 3, size: 100, wantSizes: []int{3}},
		{name: "size one yields one batch per record", records: 3, size: 1, wantSizes: []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := make([]models.ImageUpload, tt.records)
			for i := range uploads {
				uploads[i] = models.ImageUpload{Filepath: fmt.Sprintf("img-%03d.png", i)}
			}

			batches := chunkUploads(uploads, tt.size)

			require.Len(t, batches, len(tt.wantSizes))
			flattened := make([]models.ImageUpload, 0, len(uploads))
			for i, batch := range batches {
				assert.Len(t, batch, tt.wantSizes[i])
				flattened = append(flattened, batch...)
			}
			assert.Equal(t, uploads, flattened, "batches concatenated in order must reproduce the input")
		})
	}
}

// ── UploadAll: guards ────────────────────────────────────────────────────────

func TestBatchUploadService_UploadAll_InvalidBatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestUploadSvc(t, ctrl)

	for _, size := range []int{0, -1, -100} {
		report, err := svc.UploadAll(context.Background(), testRecords("a.png"), size)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
		assert.Nil(t, report)
	}
}

// An empty run still checks the token, so bad credentials surface even when
// nothing matched the inputs. No upload and no persist may happen.
func TestBatchUploadService_UploadAll_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	fresh := models.BatchToken{Token: "fresh-tok", ExpiresAt: time.Now().Add(time.Hour)}

	mockTokens.EXPECT().Get(gomock.Any()).Return(models.BatchToken{}, false)
	mockHost.EXPECT().FetchBatchToken(gomock.Any(), "acc-1", "key-1").Return(fresh, nil)
	mockTokens.EXPECT().Set(fresh)
	mockHost.EXPECT().SetToken("fresh-tok")

	report, err := svc.UploadAll(context.Background(), nil, 10)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Empty(t, report.Uploaded)
	assert.Empty(t, report.Failures)
}

// ── UploadAll: token lifecycle ───────────────────────────────────────────────

func TestBatchUploadService_UploadAll_CachedTokenSkipsFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	ctx := context.Background()
	cached := models.BatchToken{Token: "cached-tok", ExpiresAt: time.Now().Add(time.Hour)}

	mockTokens.EXPECT().Get(gomock.Any()).Return(cached, true)
	mockHost.EXPECT().SetToken("cached-tok")
	mockHost.EXPECT().UploadImage(ctx, gomock.Any()).Return("img-1", nil)

	report, err := svc.UploadAll(ctx, testRecords("a.png"), 10)

	require.NoError(t, err)
	assert.Len(t, report.Uploaded, 1)
	assert.Empty(t, report.Failures)
}

func TestBatchUploadService_UploadAll_FetchesTokenOnCacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	ctx := context.Background()
	fresh := models.BatchToken{Token: "fresh-tok", ExpiresAt: time.Now().Add(time.Hour)}

	mockTokens.EXPECT().Get(gomock.Any()).Return(models.BatchToken{}, false)
	mockHost.EXPECT().FetchBatchToken(ctx, "acc-1", "key-1").Return(fresh, nil)
	mockTokens.EXPECT().Set(fresh)
	mockHost.EXPECT().SetToken("fresh-tok")
	mockHost.EXPECT().UploadImage(ctx, gomock.Any()).Return("img-1", nil)
	mockTokens.EXPECT().Persist(".cftoken", fresh).Return(nil)

	report, err := svc.UploadAll(ctx, testRecords("a.png"), 10)

	require.NoError(t, err)
	assert.Len(t, report.Uploaded, 1)
}

func TestBatchUploadService_UploadAll_TokenFetchFailureAbortsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().Get(gomock.Any()).Return(models.BatchToken{}, false)
	mockHost.EXPECT().FetchBatchToken(ctx, "acc-1", "key-1").
		Return(models.BatchToken{}, errors.New("401 unauthorized"))
	// no UploadImage expectation: not a single record may reach the host

	report, err := svc.UploadAll(ctx, testRecords("a.png", "b.png"), 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenAcquisition)
	assert.Contains(t, err.Error(), "401 unauthorized")
	assert.Nil(t, report)
}

func TestBatchUploadService_UploadAll_PersistSkippedWhenAllFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	ctx := context.Background()
	fresh := models.BatchToken{Token: "fresh-tok", ExpiresAt: time.Now().Add(time.Hour)}

	mockTokens.EXPECT().Get(gomock.Any()).Return(models.BatchToken{}, false)
	mockHost.EXPECT().FetchBatchToken(ctx, "acc-1", "key-1").Return(fresh, nil)
	mockTokens.EXPECT().Set(fresh)
	mockHost.EXPECT().SetToken("fresh-tok")
	mockHost.EXPECT().UploadImage(ctx, gomock.Any()).
		Return("", fmt.Errorf("%w: boom", adapter.ErrTransport)).
		Times(2)
	// no Persist expectation: a token that uploaded nothing is not saved

	report, err := svc.UploadAll(ctx, testRecords("a.png", "b.png"), 10)

	require.NoError(t, err)
	assert.Empty(t, report.Uploaded)
	assert.Len(t, report.Failures, 2)
}

func TestBatchUploadService_UploadAll_PersistErrorIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	ctx := context.Background()
	fresh := models.BatchToken{Token: "fresh-tok", ExpiresAt: time.Now().Add(time.Hour)}

	mockTokens.EXPECT().Get(gomock.Any()).Return(models.BatchToken{}, false)
	mockHost.EXPECT().FetchBatchToken(ctx, "acc-1", "key-1").Return(fresh, nil)
	mockTokens.EXPECT().Set(fresh)
	mockHost.EXPECT().SetToken("fresh-tok")
	mockHost.EXPECT().UploadImage(ctx, gomock.Any()).Return("img-1", nil)
	mockTokens.EXPECT().Persist(".cftoken", fresh).Return(errors.New("disk full"))

	report, err := svc.UploadAll(ctx, testRecords("a.png"), 10)

	require.NoError(t, err, "a failed token save must not fail an otherwise successful run")
	assert.Len(t, report.Uploaded, 1)
}

func TestBatchUploadService_UploadAll_PersistSkippedWithoutTokenFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	svc.upload.TokenFile = ""
	ctx := context.Background()
	fresh := models.BatchToken{Token: "fresh-tok", ExpiresAt: time.Now().Add(time.Hour)}

	mockTokens.EXPECT().Get(gomock.Any()).Return(models.BatchToken{}, false)
	mockHost.EXPECT().FetchBatchToken(ctx, "acc-1", "key-1").Return(fresh, nil)
	mockTokens.EXPECT().Set(fresh)
	mockHost.EXPECT().SetToken("fresh-tok")
	mockHost.EXPECT().UploadImage(ctx, gomock.Any()).Return("img-1", nil)

	report, err := svc.UploadAll(ctx, testRecords("a.png"), 10)

	require.NoError(t, err)
	assert.Len(t, report.Uploaded, 1)
}

// ── UploadAll: batching and pairing ──────────────────────────────────────────

func TestBatchUploadService_UploadAll_PartialFailureKeepsPairing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	ctx := context.Background()
	cached := models.BatchToken{Token: "cached-tok", ExpiresAt: time.Now().Add(time.Hour)}
	records := testRecords("a.png", "b.png", "c.png", "d.png", "e.png")

	mockTokens.EXPECT().Get(gomock.Any()).Return(cached, true)
	mockHost.EXPECT().SetToken("cached-tok")
	mockHost.EXPECT().UploadImage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, upload models.ImageUpload) (string, error) {
			if upload.Filepath == "c.png" {
				return "", fmt.Errorf("%w: c.png: permission denied", adapter.ErrFileRead)
			}
			return "id-" + upload.Filepath, nil
		},
	).Times(5)

	report, err := svc.UploadAll(ctx, records, 5)

	require.NoError(t, err)
	require.Len(t, report.Uploaded, 4)
	for _, name := range []string{"a.png", "b.png", "d.png", "e.png"} {
		record, ok := report.Uploaded["id-"+name]
		require.True(t, ok, "missing result for %s", name)
		assert.Equal(t, name, record.Filepath, "result attributed to the wrong record")
	}

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "c.png", report.Failures[0].Record.Filepath)
	assert.ErrorIs(t, report.Failures[0].Err, adapter.ErrFileRead)
}

func TestBatchUploadService_UploadAll_FailuresKeepInputOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockHost, mockTokens := newTestUploadSvc(t, ctrl)
	ctx := context.Background()
	cached := models.BatchToken{Token: "cached-tok", ExpiresAt: time.Now().Add(time.Hour)}
	records := testRecords("a.png", "b.png", "c.png", "d.png")

	mockTokens.EXPECT().Get(gomock.Any()).Return(cached, true)
	mockHost.EXPECT().SetToken("cached-tok")
	mockHost.EXPECT().UploadImage(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, upload models.ImageUpload) (string, error) {
			return "", fmt.Errorf("%w: rejected", adapter.ErrRemoteRejected)
		},
	).Times(4)

	report, err := svc.UploadAll(ctx, records, 2)

	require.NoError(t, err)
	require.Len(t, report.Failures, 4)
	for i, failure := range report.Failures {
		assert.Equal(t, records[i].Filepath, failure.Record.Filepath)
	}
}

func TestBatchUploadService_UploadAll_BatchesRunSequentially(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var inFlight, maxInFlight int64
	var mu sync.Mutex
	var order []string

	host := &stubHost{
		uploadFn: func(_ context.Context, upload models.ImageUpload) (string, error) {
			current := atomic.AddInt64(&inFlight, 1)
			for {
				seen := atomic.LoadInt64(&maxInFlight)
				if current <= seen || atomic.CompareAndSwapInt64(&maxInFlight, seen, current) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			order = append(order, upload.Filepath)
			mu.Unlock()

			atomic.AddInt64(&inFlight, -1)
			return "id-" + upload.Filepath, nil
		},
	}

	mockTokens := mock.NewMockTokenStore(ctrl)
	cached := models.BatchToken{Token: "cached-tok", ExpiresAt: time.Now().Add(time.Hour)}
	mockTokens.EXPECT().Get(gomock.Any()).Return(cached, true)

	svc := NewBatchUploadService(
		host,
		mockTokens,
		config.Account{ID: "acc-1", APIKey: "key-1"},
		config.Upload{BatchSize: 1, TokenFile: ""},
		logger.Nop(),
	)

	records := testRecords("a.png", "b.png", "c.png")
	report, err := svc.UploadAll(context.Background(), records, 1)

	require.NoError(t, err)
	assert.Len(t, report.Uploaded, 3)
	assert.EqualValues(t, 1, atomic.LoadInt64(&maxInFlight), "batch size 1 allows exactly one upload in flight")
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, order, "single-record batches run in input order")
}

func TestBatchUploadService_UploadAll_RecordsWithinBatchOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	barrier := make(chan struct{})
	var arrived int32

	host := &stubHost{
		uploadFn: func(_ context.Context, upload models.ImageUpload) (string, error) {
			if atomic.AddInt32(&arrived, 1) == 2 {
				close(barrier)
			}
			select {
			case <-barrier:
				return "id-" + upload.Filepath, nil
			case <-time.After(2 * time.Second):
				return "", errors.New("records of one batch never overlapped")
			}
		},
	}

	mockTokens := mock.NewMockTokenStore(ctrl)
	cached := models.BatchToken{Token: "cached-tok", ExpiresAt: time.Now().Add(time.Hour)}
	mockTokens.EXPECT().Get(gomock.Any()).Return(cached, true)

	svc := NewBatchUploadService(
		host,
		mockTokens,
		config.Account{ID: "acc-1", APIKey: "key-1"},
		config.Upload{BatchSize: 2, TokenFile: ""},
		logger.Nop(),
	)

	report, err := svc.UploadAll(context.Background(), testRecords("a.png", "b.png"), 2)

	require.NoError(t, err)
	assert.Len(t, report.Uploaded, 2)
	assert.Empty(t, report.Failures)
}

func TestBatchUploadService_UploadAll_BoundedByBatchSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var inFlight, maxInFlight int64

	host := &stubHost{
		uploadFn: func(_ context.Context, upload models.ImageUpload) (string, error) {
			current := atomic.AddInt64(&inFlight, 1)
			for {
				seen := atomic.LoadInt64(&maxInFlight)
				if current <= seen || atomic.CompareAndSwapInt64(&maxInFlight, seen, current) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
			return "id-" + filepath.Base(upload.Filepath), nil
		},
	}

	mockTokens := mock.NewMockTokenStore(ctrl)
	cached := models.BatchToken{Token: "cached-tok", ExpiresAt: time.Now().Add(time.Hour)}
	mockTokens.EXPECT().Get(gomock.Any()).Return(cached, true)

	svc := NewBatchUploadService(
		host,
		mockTokens,
		config.Account{ID: "acc-1", APIKey: "key-1"},
		config.Upload{BatchSize: 2, TokenFile: ""},
		logger.Nop(),
	)

	records := testRecords("a.png", "b.png", "c.png", "d.png", "e.png", "f.png")
	report, err := svc.UploadAll(context.Background(), records, 2)

	require.NoError(t, err)
	assert.Len(t, report.Uploaded, 6)
	assert.LessOrEqual(t, atomic.LoadInt64(&maxInFlight), int64(2), "no more than one batch may be in flight")
}

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-image-uploader/internal/config"
	"github.com/MKhiriev/go-image-uploader/internal/logger"
	"github.com/MKhiriev/go-image-uploader/internal/utils"
	"github.com/MKhiriev/go-image-uploader/models"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// traceIDHeader tags every outgoing request so a failed call can be matched
// against the host's own logs.
const traceIDHeader = "X-Trace-ID"

type httpImageHost struct {
	api     *utils.HTTPClient
	uploads *utils.HTTPClient
	ids     *utils.UUIDGenerator

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPImageHost constructs the HTTP implementation of [ImageHost].
// It normalises and validates both endpoint base URLs from cfg and
// configures two independent HTTP clients, one for the account API that
// issues batch tokens and one for the batch upload endpoint. Both clients
// share the request timeout and User-Agent from cfg.
//
// Returns an error if either base URL is empty or cannot be parsed.
func NewHTTPImageHost(cfg config.HTTP, logger *logger.Logger) (ImageHost, error) {
	apiBaseURL, err := normalizeBaseURL(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	uploadBaseURL, err := normalizeBaseURL(cfg.UploadBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upload base url: %w", err)
	}

	api := utils.NewHTTPClient(cfg.RequestTimeout, cfg.UserAgent)
	api.SetBaseURL(apiBaseURL)

	uploads := utils.NewHTTPClient(cfg.RequestTimeout, cfg.UserAgent)
	uploads.SetBaseURL(uploadBaseURL)

	return &httpImageHost{
		api:     api,
		uploads: uploads,
		ids:     utils.NewUUIDGenerator(),
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ImageHost]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent upload requests.
func (h *httpImageHost) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ImageHost]. It returns the batch token currently held by
// the adapter, or an empty string if none has been set.
func (h *httpImageHost) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// FetchBatchToken implements [ImageHost]. It GETs the batch-token endpoint
// GET /accounts/{accountID}/images/v1/batch_token authenticated with apiKey
// and decodes the token grant from the response envelope. The grant's expiry
// arrives as an RFC 3339 timestamp with sub-second precision.
func (h *httpImageHost) FetchBatchToken(ctx context.Context, accountID, apiKey string) (models.BatchToken, error) {
	traceID := h.ids.Generate()
	l := h.tracedLogger(traceID)
	l.Debug().Str("account_id", accountID).Msg("requesting batch token")

	resp, err := h.api.R().
		SetContext(ctx).
		SetAuthToken(apiKey).
		SetHeader(traceIDHeader, traceID).
		Get(fmt.Sprintf("/accounts/%s/images/v1/batch_token", accountID))
	if err != nil {
		return models.BatchToken{}, fmt.Errorf("%w: batch token request: %v", ErrTransport, err)
	}

	result, err := decodeEnvelope(resp, "batch token request")
	if err != nil {
		return models.BatchToken{}, err
	}

	var grant models.TokenGrant
	if err = json.Unmarshal(result, &grant); err != nil {
		return models.BatchToken{}, fmt.Errorf("%w: decode token grant: %v", ErrMalformedResponse, err)
	}
	if grant.Token == "" || grant.ExpiresAt == "" {
		return models.BatchToken{}, fmt.Errorf("%w: token grant missing token or expiry", ErrMalformedResponse)
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, grant.ExpiresAt)
	if err != nil {
		return models.BatchToken{}, fmt.Errorf("%w: parse token expiry %q: %v", ErrMalformedResponse, grant.ExpiresAt, err)
	}

	l.Debug().Time("expires_at", expiresAt).Msg("fetched fresh batch token")
	return models.BatchToken{Token: grant.Token, ExpiresAt: expiresAt}, nil
}

// UploadImage implements [ImageHost]. It validates the record, reads the
// file, and POSTs it as multipart form data to POST /images/v1 with the
// stored batch token. The file travels under the "file" field named by its
// base name; the remaining fields come from [models.ImageUpload.FormData].
// Returns the identifier the host assigned to the image.
func (h *httpImageHost) UploadImage(ctx context.Context, upload models.ImageUpload) (string, error) {
	if upload.ID != "" && upload.RequireSignedURLs {
		return "", fmt.Errorf("%w: %s: id and requireSignedURLs are mutually exclusive", ErrInvalidRecord, upload.Filepath)
	}

	fields, err := upload.FormData()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	data, err := os.ReadFile(upload.Filepath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFileRead, err)
	}

	traceID := h.ids.Generate()
	fileName := filepath.Base(upload.Filepath)
	l := h.tracedLogger(traceID)
	l.Debug().Str("file", upload.Filepath).Msg("uploading image")

	resp, err := h.uploadRequest(ctx, traceID).
		SetFileReader("file", fileName, bytes.NewReader(data)).
		SetMultipartFormData(fields).
		Post("/images/v1")
	if err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", ErrTransport, upload.Filepath, err)
	}

	result, err := decodeEnvelope(resp, "upload "+fileName)
	if err != nil {
		return "", err
	}

	var uploaded models.UploadResult
	if err = json.Unmarshal(result, &uploaded); err != nil {
		return "", fmt.Errorf("%w: decode upload result: %v", ErrMalformedResponse, err)
	}
	if uploaded.ID == "" {
		return "", fmt.Errorf("%w: upload result missing id", ErrMalformedResponse)
	}

	l.Debug().Str("file", upload.Filepath).Str("id", uploaded.ID).Msg("image uploaded")
	return uploaded.ID, nil
}

// tracedLogger returns a child logger bound to traceID, so every entry of
// one remote call carries the same trace_id field as the request header.
func (h *httpImageHost) tracedLogger(traceID string) *logger.Logger {
	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	return l
}

func (h *httpImageHost) uploadRequest(ctx context.Context, traceID string) *resty.Request {
	req := h.uploads.R().SetContext(ctx).SetHeader(traceIDHeader, traceID)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// decodeEnvelope validates the transport status of resp and unwraps the
// response envelope. Non-2xx statuses map to [ErrTransport], undecodable
// bodies to [ErrMalformedResponse], and envelopes with success set to false
// to a [*RejectionError]. On success the raw result payload is returned.
func decodeEnvelope(resp *resty.Response, operation string) (json.RawMessage, error) {
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		body := strings.TrimSpace(string(resp.Body()))
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return nil, fmt.Errorf("%w: %s: http %d: %s", ErrTransport, operation, resp.StatusCode(), body)
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, operation, err)
	}

	if !envelope.Success {
		return nil, &RejectionError{Operation: operation, Errors: envelope.Errors}
	}

	return envelope.Result, nil
}

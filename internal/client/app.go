package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MKhiriev/go-image-uploader/internal/config"
	"github.com/MKhiriev/go-image-uploader/internal/logger"
	"github.com/MKhiriev/go-image-uploader/internal/scan"
	"github.com/MKhiriev/go-image-uploader/internal/service"
	"github.com/MKhiriev/go-image-uploader/internal/store"
	"github.com/MKhiriev/go-image-uploader/models"
)

// stdinMarker in the input list replaces the whole list with paths read from
// standard input, one per line.
const stdinMarker = "-"

type App struct {
	cfg      *config.StructuredConfig
	uploader service.BatchUploader
	tokens   store.TokenStore
	logger   *logger.Logger

	stdin  io.Reader
	stdout io.Writer
}

var _ Client = (*App)(nil)

func NewApp(cfg *config.StructuredConfig, uploader service.BatchUploader, tokens store.TokenStore, log *logger.Logger) (*App, error) {
	if cfg == nil || uploader == nil || tokens == nil || log == nil {
		return nil, errors.New("client app requires config, uploader, token store, and logger")
	}

	return &App{
		cfg:      cfg,
		uploader: uploader,
		tokens:   tokens,
		logger:   log,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}, nil
}

// Run executes one full upload pass: expand inputs, gather image records,
// restore any saved batch token, upload everything, and write the report.
// The report is written even when some records failed; in that case Run
// returns ErrUploadsFailed after the report is on disk or stdout.
func (a *App) Run(ctx context.Context) error {
	inputs, err := a.expandInputs()
	if err != nil {
		return err
	}

	records, err := scan.Gather(inputs, a.cfg.Upload.Recursive, a.cfg.Upload.RequireSignedURLs)
	if err != nil {
		return fmt.Errorf("gather uploads: %w", err)
	}
	if len(records) == 0 {
		a.logger.Warn().Strs("inputs", inputs).Msg("no images found")
	}

	a.preloadToken()

	report, err := a.uploader.UploadAll(ctx, records, a.cfg.Upload.BatchSize)
	if err != nil {
		return fmt.Errorf("upload run: %w", err)
	}

	if err := a.writeReport(report); err != nil {
		return err
	}

	if len(report.Failures) > 0 {
		return fmt.Errorf("%w: %d of %d images", ErrUploadsFailed, len(report.Failures), len(records))
	}

	a.logger.Info().Int("uploaded", len(report.Uploaded)).Msg("all images uploaded")
	return nil
}

// expandInputs returns the configured input paths, or the paths read from
// stdin when the marker is present anywhere in the list.
func (a *App) expandInputs() ([]string, error) {
	if !slices.Contains(a.cfg.Run.Inputs, stdinMarker) {
		return a.cfg.Run.Inputs, nil
	}

	var paths []string
	scanner := bufio.NewScanner(a.stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read image paths from stdin: %w", err)
	}
	return paths, nil
}

// preloadToken seeds the in-memory store from the token file. Any load
// failure just means the run starts without a reusable token.
func (a *App) preloadToken() {
	if a.cfg.Upload.TokenFile == "" {
		return
	}

	token, err := a.tokens.Load(a.cfg.Upload.TokenFile)
	if err != nil {
		a.logger.Debug().Err(err).Str("path", a.cfg.Upload.TokenFile).Msg("no reusable batch token")
		return
	}

	a.tokens.Set(token)
	a.logger.Debug().
		Str("path", a.cfg.Upload.TokenFile).
		Time("expires_at", token.ExpiresAt).
		Msg("loaded saved batch token")
}

// writeReport serializes the successes as a JSON object keyed by the
// host-assigned image ID, to stdout by default or to the configured file.
func (a *App) writeReport(report *models.UploadReport) error {
	data, err := json.MarshalIndent(report.Uploaded, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize upload report: %w", err)
	}

	if a.cfg.Run.OutputFile == "" {
		data = append(data, '\n')
		if _, err := a.stdout.Write(data); err != nil {
			return fmt.Errorf("write upload report: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(a.cfg.Run.OutputFile, data, 0o644); err != nil {
		return fmt.Errorf("write upload report: %w", err)
	}
	a.logger.Info().Str("path", a.cfg.Run.OutputFile).Msg("upload report written")
	return nil
}

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-image-uploader/internal/adapter"
	"github.com/MKhiriev/go-image-uploader/internal/client"
	"github.com/MKhiriev/go-image-uploader/internal/config"
	"github.com/MKhiriev/go-image-uploader/internal/logger"
	"github.com/MKhiriev/go-image-uploader/internal/service"
	"github.com/MKhiriev/go-image-uploader/internal/store"
	"github.com/MKhiriev/go-image-uploader/models"
	"github.com/rs/zerolog"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("go-image-uploader")

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Run.Quiet {
		log = log.AtLevel(zerolog.WarnLevel)
	}

	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	log.Debug().Str("build", build.String()).Msg("build info")
	log.Debug().
		Str("account_id", cfg.Account.ID).
		Int("batch_size", cfg.Upload.BatchSize).
		Str("api_base_url", cfg.HTTP.APIBaseURL).
		Str("upload_base_url", cfg.HTTP.UploadBaseURL).
		Strs("inputs", cfg.Run.Inputs).
		Msg("received configs")

	host, err := adapter.NewHTTPImageHost(cfg.HTTP, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create image host adapter")
	}

	tokens := store.NewTokenCache(log)
	uploader := service.NewBatchUploadService(host, tokens, cfg.Account, cfg.Upload, log)

	app, err := client.NewApp(cfg, uploader, tokens, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init uploader app error")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err = app.Run(ctx); err != nil {
		if errors.Is(err, client.ErrUploadsFailed) {
			log.Error().Err(err).Msg("finished with failed uploads")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("uploader run error")
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-table-mirror/internal/adapter"
	"github.com/MKhiriev/go-table-mirror/internal/app"
	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/handler"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/metrics"
	"github.com/MKhiriev/go-table-mirror/internal/server"
	"github.com/MKhiriev/go-table-mirror/internal/service"
	"github.com/MKhiriev/go-table-mirror/internal/store"
	"github.com/MKhiriev/go-table-mirror/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	log := logger.NewLogger("table-mirror")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.LogFile != "" {
		log = logger.NewFileLogger("table-mirror", logger.FileOptions{Path: cfg.App.LogFile, Compress: true})
	}

	log.Debug().Strs("tables", cfg.App.Tables).Str("cache", cfg.Cache.Backend).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	rest, err := adapter.NewRestAdapter(cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating rest adapter")
	}

	m := metrics.New()

	services, err := service.NewServices(storages, rest, cfg, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	var srv server.Server
	handlers, err := handler.NewHandlers(services, m, buildInfo, cfg.Metrics, log)
	switch {
	case err == nil:
		if srv, err = server.NewServer(handlers, cfg.Metrics, log); err != nil {
			log.Fatal().Err(err).Msg("error creating server")
		}
	case handler.IsDisabled(err):
		log.Info().Msg("ops listener disabled")
	default:
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	application, err := app.NewApp(services, srv, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	if err = application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("mirror run error")
		storages.Close()
		os.Exit(1)
	}
}

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/server"
	"github.com/MKhiriev/go-table-mirror/internal/service"
	"github.com/MKhiriev/go-table-mirror/internal/workers"
	"github.com/MKhiriev/go-table-mirror/models"
)

type App struct {
	services *service.Services
	server   server.Server
	workers  *workers.Workers
	cfg      config.App
	oneShot  bool

	logger *logger.Logger
}

// NewApp assembles the runtime. srv may be nil when no ops listener is
// configured. Without a refresh interval and a listener the app runs once.
func NewApp(services *service.Services, srv server.Server, cfg *config.StructuredConfig, logger *logger.Logger) (*App, error) {
	if services == nil || services.Mirror == nil {
		return nil, ErrNoMirrorService
	}

	a := &App{
		services: services,
		server:   srv,
		cfg:      cfg.App,
		workers:  workers.NewWorkers(),
		logger:   logger,
	}
	if cfg.Workers.SyncInterval > 0 {
		a.workers = workers.NewWorkers(services.RefreshJob)
	}
	a.oneShot = cfg.Workers.SyncInterval == 0 && srv == nil

	return a, nil
}

// Run pushes the configured file, refreshes every table, then keeps the
// refresh job and the listener running until ctx is cancelled. A failing
// initial refresh is reported, not fatal, unless the app runs once.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.PushFile != "" {
		if err := a.push(ctx, a.cfg.PushTable, a.cfg.PushFile); err != nil {
			return err
		}
	}

	refreshErr := a.services.Mirror.RefreshAll(ctx)
	if refreshErr != nil {
		a.logger.Warn().Err(refreshErr).Msg("initial refresh finished with errors")
	}
	if a.oneShot {
		return refreshErr
	}

	a.workers.Run(ctx)
	defer a.workers.Stop()

	if a.server == nil {
		<-ctx.Done()
		a.logger.Info().Msg("shutting down")
		return nil
	}
	return a.server.RunServer(ctx)
}

func (a *App) push(ctx context.Context, table, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open push file: %w", err)
	}
	defer f.Close()

	desired, err := models.DecodeSnapshot(f)
	if err != nil {
		return fmt.Errorf("decode push file %s: %w", path, err)
	}

	if err = a.services.Mirror.Mirror(ctx, table, desired); err != nil {
		return fmt.Errorf("push %s to %s: %w", path, table, err)
	}

	a.logger.Info().Str("table", table).Int("rows", desired.Len()).Msg("push file mirrored")
	return nil
}

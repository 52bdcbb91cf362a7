package service

import (
	"fmt"

	"github.com/MKhiriev/go-table-mirror/internal/adapter"
	"github.com/MKhiriev/go-table-mirror/internal/cache"
	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/diff"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/metrics"
	"github.com/MKhiriev/go-table-mirror/internal/store"
	"github.com/MKhiriev/go-table-mirror/internal/validators"
)

type Services struct {
	Mirror     MirrorService
	RefreshJob RefreshJob
}

func NewServices(storages *store.Storages, rest adapter.RestAdapter, cfg *config.StructuredConfig, recorder metrics.Recorder, logger *logger.Logger) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	validator := validators.NewTypeCompatibilityValidator()
	differ := diff.NewEngine(diff.NewComparer())
	oracle := cache.NewOracle(storages.Cache, logger)

	factory := func(name string) TableSyncer {
		return NewTable(name, TableDeps{
			Catalog:      storages.Catalog,
			Rest:         rest,
			Cache:        storages.Cache,
			Oracle:       oracle,
			Validator:    validator,
			Differ:       differ,
			Metrics:      recorder,
			Location:     loc,
			ForceAnalyze: cfg.App.ForceAnalyze,
		}, logger)
	}

	mirror, err := NewMirrorService(cfg.App.Tables, factory, cfg.App.Parallelism, recorder, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		Mirror:     mirror,
		RefreshJob: NewRefreshJob(mirror, cfg.Workers.SyncInterval, logger),
	}, nil
}

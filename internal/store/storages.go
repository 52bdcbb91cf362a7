package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-table-mirror/internal/config"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
)

// Storages groups the remote catalog and the local cache store into a single
// value that can be passed to the service layer.
type Storages struct {
	// Catalog reads metadata and column declarations from PostgreSQL.
	Catalog RemoteCatalog
	// Cache persists cache entries and schema artifacts.
	Cache CacheStore

	dbs []*DB
}

// NewStorages opens the PostgreSQL connection and the configured cache
// backend. For the sqlite backend it also applies the cache migrations.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("cache_backend", cfg.Cache.Backend).Msg("creating new storages...")

	remote, err := NewConnectPostgres(ctx, cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	storages := &Storages{
		Catalog: NewPostgresCatalog(remote, cfg.Remote.Schema, logger),
		dbs:     []*DB{remote},
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendSQLite:
		local, err := NewConnectSQLite(ctx, cfg.Cache.DSN, logger)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		storages.dbs = append(storages.dbs, local)

		if err := local.Migrate(); err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		storages.Cache = NewSQLiteCacheStore(local, logger)
	default:
		fileStore, err := NewFileCacheStore(cfg.Cache.Dir, logger)
		if err != nil {
			_ = storages.Close()
			return nil, err
		}
		storages.Cache = fileStore
	}

	return storages, nil
}

// Close releases every database handle opened by [NewStorages].
func (s *Storages) Close() error {
	var errs []error
	for _, db := range s.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

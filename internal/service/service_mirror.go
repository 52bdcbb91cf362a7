package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/cache"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/metrics"
	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
	"golang.org/x/sync/errgroup"
)

// TableFactory builds the coordinator of one table.
type TableFactory func(name string) TableSyncer

type tableSlot struct {
	mu     sync.Mutex
	table  TableSyncer
	opened bool
}

type mirrorService struct {
	names       []string
	tables      map[string]*tableSlot
	parallelism int

	ids     *utils.UUIDGenerator
	metrics metrics.Recorder
	logger  *logger.Logger
}

// NewMirrorService builds one TableSyncer per name with factory. Tables are
// opened lazily on first use. parallelism bounds RefreshAll; values below 1
// refresh one table at a time.
func NewMirrorService(names []string, factory TableFactory, parallelism int, recorder metrics.Recorder, logger *logger.Logger) (MirrorService, error) {
	if len(names) == 0 {
		return nil, ErrNoTables
	}
	if parallelism < 1 {
		parallelism = 1
	}
	if recorder == nil {
		recorder = metrics.NewNop()
	}

	m := &mirrorService{
		tables:      make(map[string]*tableSlot, len(names)),
		parallelism: parallelism,
		ids:         utils.NewUUIDGenerator(),
		metrics:     recorder,
		logger:      logger,
	}
	for _, name := range names {
		if _, dup := m.tables[name]; dup {
			continue
		}
		m.names = append(m.names, name)
		m.tables[name] = &tableSlot{table: factory(name)}
	}

	return m, nil
}

// Mirror pushes desired to table under the table's lock.
func (m *mirrorService) Mirror(ctx context.Context, table string, desired *models.Snapshot) error {
	return m.run(ctx, table, "mirror", func(ctx context.Context, t TableSyncer) error {
		return t.Mirror(ctx, desired)
	})
}

// Refresh validates the cache of table, rebuilding it when stale.
func (m *mirrorService) Refresh(ctx context.Context, table string) error {
	return m.run(ctx, table, "refresh", func(ctx context.Context, t TableSyncer) error {
		return t.ValidateCache(ctx)
	})
}

// RefreshAll refreshes every table, at most parallelism at a time. A failing
// table does not stop the others; all failures are joined.
func (m *mirrorService) RefreshAll(ctx context.Context) error {
	errs := make([]error, len(m.names))

	var g errgroup.Group
	g.SetLimit(m.parallelism)
	for i, name := range m.names {
		g.Go(func() error {
			errs[i] = m.Refresh(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Snapshot returns a copy of the cached rows of table, refreshing first.
func (m *mirrorService) Snapshot(ctx context.Context, table string) (*models.Snapshot, error) {
	var snapshot *models.Snapshot
	err := m.run(ctx, table, "snapshot", func(ctx context.Context, t TableSyncer) error {
		if err := t.ValidateCache(ctx); err != nil {
			return err
		}
		snapshot = t.Snapshot()
		if snapshot == nil {
			return ErrSnapshotUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Status reports every table in configuration order. Tables busy with a run
// are waited for.
func (m *mirrorService) Status() []TableStatus {
	out := make([]TableStatus, 0, len(m.names))
	for _, name := range m.names {
		slot := m.tables[name]
		slot.mu.Lock()
		out = append(out, slot.table.Status())
		slot.mu.Unlock()
	}
	return out
}

func (m *mirrorService) run(ctx context.Context, table, op string, fn func(context.Context, TableSyncer) error) error {
	slot, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	runID := m.ids.Generate()
	ctx = utils.WithTable(utils.WithRunID(ctx, runID), table)
	ctx, log := m.logger.ForRun(ctx, runID, table)

	slot.mu.Lock()
	defer slot.mu.Unlock()

	start := time.Now()
	log.Debug().Str("op", op).Msg("run started")

	err := m.ensureOpen(ctx, slot)
	if err == nil {
		err = fn(ctx, slot.table)
	}

	status := runStatus(err)
	m.metrics.RunFinished(table, status, time.Since(start))
	if err != nil {
		log.Err(err).Str("op", op).Str("status", status).Dur("elapsed", time.Since(start)).Msg("run failed")
		return err
	}

	log.Info().Str("op", op).Dur("elapsed", time.Since(start)).Msg("run finished")
	return nil
}

func (m *mirrorService) ensureOpen(ctx context.Context, slot *tableSlot) error {
	if slot.opened {
		return nil
	}
	if err := slot.table.Open(ctx); err != nil {
		return err
	}
	slot.opened = true
	return nil
}

func runStatus(err error) string {
	var violation *models.SchemaViolationError
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.As(err, &violation):
		return metrics.StatusRejected
	case errors.Is(err, cache.ErrUpdateFailed), errors.Is(err, ErrSnapshotUnavailable):
		return metrics.StatusCacheError
	default:
		return metrics.StatusRemoteError
	}
}

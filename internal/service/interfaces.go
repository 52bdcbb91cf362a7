// Package service coordinates the mirror of remote tables.
//
// A Table owns one remote table: its schema, its cache entry and the write
// path from a desired snapshot to the remote rows. Mirror holds one Table per
// configured name, serializes work per table and refreshes tables in
// parallel. RefreshJob runs Mirror.RefreshAll on a ticker.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/cache"
	"github.com/MKhiriev/go-table-mirror/models"
)

// TableSyncer is the per-table coordinator.
type TableSyncer interface {
	// Open reads the table schema and loads the stored cache entry.
	Open(ctx context.Context) error

	// ValidateCache compares the cache entry with fresh remote metadata and
	// rebuilds it from a full read when they disagree.
	ValidateCache(ctx context.Context) error

	// Mirror makes the remote table hold exactly desired. Nothing is written
	// when desired does not fit the schema.
	Mirror(ctx context.Context, desired *models.Snapshot) error

	// Snapshot returns a copy of the cached rows, nil before the first
	// successful validation.
	Snapshot() *models.Snapshot

	// Status describes the cache entry.
	Status() TableStatus
}

// MirrorService drives every configured table.
type MirrorService interface {
	Mirror(ctx context.Context, table string, desired *models.Snapshot) error
	Refresh(ctx context.Context, table string) error
	RefreshAll(ctx context.Context) error
	Snapshot(ctx context.Context, table string) (*models.Snapshot, error)
	Status() []TableStatus
}

// Refresher is the part of MirrorService the refresh job needs.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// RefreshJob periodically refreshes every table.
type RefreshJob interface {
	// Run starts the job with its configured interval.
	Run(ctx context.Context)
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// TableStatus is a point-in-time view of one table's cache.
type TableStatus struct {
	Table        string      `json:"table"`
	State        cache.State `json:"state"`
	Rows         int         `json:"rows"`
	Columns      int         `json:"columns"`
	LastModified *time.Time  `json:"last_modified,omitempty"`
	RecordCount  int64       `json:"record_count"`
	Hash         string      `json:"hash,omitempty"`
}

package store

import (
	"context"

	"github.com/MKhiriev/go-table-mirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// MetadataProvider reports the cheap change summary of a remote table.
type MetadataProvider interface {
	GetRemoteMetadata(ctx context.Context, table string) (models.RemoteMetadata, error)
}

// SchemaProvider describes the declared columns of a remote table.
type SchemaProvider interface {
	GetColumns(ctx context.Context, table string) (*models.TableSchema, error)
}

// Analyzer refreshes the remote statistics of a table.
type Analyzer interface {
	Analyze(ctx context.Context, table string) error
}

// RemoteCatalog is the direct database connection used beside the REST API.
type RemoteCatalog interface {
	MetadataProvider
	SchemaProvider
	Analyzer
}

// CacheStore persists cache entries and schema artifacts per table.
//
// LoadEntry returns [ErrCacheNotFound] when nothing usable is stored and
// [ErrCacheCorrupted] when stored data cannot be decoded.
type CacheStore interface {
	LoadEntry(ctx context.Context, table string) (*models.CacheEntry, error)
	SaveEntry(ctx context.Context, table string, entry *models.CacheEntry) error
	LoadSchema(ctx context.Context, table string) (*models.TableSchema, error)
	SaveSchema(ctx context.Context, schema *models.TableSchema) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

package store

import (
	"database/sql"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/migrations"
)

// DB wraps a database handle together with the dialect's error classifier.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the cache schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

package diff

import (
	"context"

	"github.com/MKhiriev/go-table-mirror/models"
)

// RowComparer decides whether two rows hold the same logical record.
type RowComparer interface {
	RowsEqual(src, dst models.Row, types map[string]models.LocalType) bool
}

// Differ produces upsert and delete sets. destination may be nil.
type Differ interface {
	Diff(ctx context.Context, source, destination *models.Snapshot, primaryKeys []string) (models.DiffResult, error)
}

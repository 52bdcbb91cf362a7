package diff

import (
	"context"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
)

// Engine is the primary-key joined Differ. It never mutates its inputs.
type Engine struct {
	comparer RowComparer
}

// NewEngine constructs an Engine. A nil comparer uses NewComparer().
func NewEngine(comparer RowComparer) *Engine {
	if comparer == nil {
		comparer = NewComparer()
	}
	return &Engine{comparer: comparer}
}

// Diff implements Differ.
//
// Without a destination every source row is an upsert. Otherwise both
// snapshots are indexed by primary-key tuple, then:
//
//   - Pass 1 (over source): a row is upserted when its key is new or the
//     matched destination row differs under the source column types.
//   - Pass 2 (over destination): a row is deleted when its key is absent
//     from the source.
//
// Rows keep the iteration order of their snapshot. Duplicate keys within a
// snapshot are a caller error; the last row wins. ctx cancellation is
// checked per row.
func (e *Engine) Diff(ctx context.Context, source, destination *models.Snapshot, primaryKeys []string) (models.DiffResult, error) {
	var result models.DiffResult

	if source == nil {
		source = &models.Snapshot{}
	}

	if destination == nil {
		if source.Len() > 0 {
			result.Upserts = source.Select(allIndexes(source.Len()))
		}
		return result, nil
	}

	sourceIndex, err := indexByKey(ctx, source, primaryKeys)
	if err != nil {
		return models.DiffResult{}, err
	}
	destinationIndex, err := indexByKey(ctx, destination, primaryKeys)
	if err != nil {
		return models.DiffResult{}, err
	}

	// ── Pass 1: new and changed rows ────────────────────────────────────────
	var upserts []int
	for i, row := range source.Rows {
		if err := ctx.Err(); err != nil {
			return models.DiffResult{}, err
		}

		key := row.Key(primaryKeys, utils.CanonicalValue)
		if sourceIndex[key] != i {
			// shadowed by a later row with the same key
			continue
		}

		j, exists := destinationIndex[key]
		if !exists || !e.comparer.RowsEqual(row, destination.Rows[j], source.Types) {
			upserts = append(upserts, i)
		}
	}

	// ── Pass 2: rows gone from the source ───────────────────────────────────
	var deletes []int
	for j, row := range destination.Rows {
		if err := ctx.Err(); err != nil {
			return models.DiffResult{}, err
		}

		key := row.Key(primaryKeys, utils.CanonicalValue)
		if destinationIndex[key] != j {
			continue
		}
		if _, exists := sourceIndex[key]; !exists {
			deletes = append(deletes, j)
		}
	}

	if len(upserts) > 0 {
		result.Upserts = source.Select(upserts)
	}
	if len(deletes) > 0 {
		result.Deletes = destination.Select(deletes)
	}
	return result, nil
}

func indexByKey(ctx context.Context, s *models.Snapshot, primaryKeys []string) (map[string]int, error) {
	index := make(map[string]int, s.Len())
	for i, row := range s.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		index[row.Key(primaryKeys, utils.CanonicalValue)] = i
	}
	return index, nil
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

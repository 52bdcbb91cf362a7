package cache

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
)

// ErrNilSnapshot is returned when hashing a missing snapshot.
var ErrNilSnapshot = errors.New("snapshot is nil")

// Hasher computes the content digest of a snapshot.
type Hasher func(snapshot *models.Snapshot) (string, error)

// Hash returns the hex SHA-256 of the snapshot serialized as CSV: a header of
// the column names in sorted order followed by one record per row in row
// order. Values are rendered by utils.CanonicalValue, so logically equal
// values in different Go representations hash identically. Null cells (nil
// or NaN) are written as empty fields and flagged in a leading marker field,
// which keeps them distinct from empty strings.
func Hash(snapshot *models.Snapshot) (string, error) {
	if snapshot == nil {
		return "", ErrNilSnapshot
	}

	columns := slices.Clone(snapshot.Columns)
	slices.Sort(columns)

	return utils.HashStream(func(w io.Writer) error {
		cw := csv.NewWriter(w)

		header := append([]string{"#nulls"}, columns...)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("error writing hash header: %w", err)
		}

		record := make([]string, len(columns)+1)
		nulls := make([]byte, len(columns))
		for i, row := range snapshot.Rows {
			for j, c := range columns {
				v := row[c]
				if isNull(v) {
					nulls[j] = '1'
					record[j+1] = ""
					continue
				}
				nulls[j] = '0'
				record[j+1] = utils.CanonicalValue(v)
			}
			record[0] = string(nulls)
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("error writing hash record %d: %w", i, err)
			}
		}

		cw.Flush()
		return cw.Error()
	})
}

func isNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

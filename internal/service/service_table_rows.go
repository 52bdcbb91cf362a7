package service

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
)

// conform returns a copy of s whose values use the representation preferred
// for each declared column: integers as int64, floats as float64 and
// temporal values as time.Time. Values that do not convert are kept as they
// are. Columns unknown to the schema only have their JSON numbers decoded,
// so a cache rebuilt after schema drift hashes the same after a reload.
func conform(schema *models.TableSchema, s *models.Snapshot) *models.Snapshot {
	columns := s.Columns
	if len(columns) == 0 {
		columns = schema.ColumnNames()
	}

	rows := make([]models.Row, len(s.Rows))
	for i, r := range s.Rows {
		out := make(models.Row, len(r))
		for k, v := range r {
			col, ok := schema.Column(k)
			if !ok {
				out[k] = decodeNumber(v)
				continue
			}
			out[k] = conformValue(col.Type, v)
		}
		rows[i] = out
	}

	conformed := models.NewSnapshot(columns, rows)
	preferred := schema.EmptySnapshot().Types
	for _, c := range columns {
		if conformed.Types[c] != models.Object || !allNull(conformed.Values(c)) {
			continue
		}
		if lt, ok := preferred[c]; ok {
			conformed.Types[c] = lt
		}
	}
	return conformed
}

func conformValue(t models.DeclaredType, v any) any {
	if v == nil {
		return nil
	}

	switch {
	case t.IsInteger():
		if i, ok := utils.ToInt64(v); ok {
			return i
		}
		if f, ok := v.(float64); ok && math.IsNaN(f) {
			return nil
		}
	case t == models.Real || t == models.DoublePrecision || t == models.Numeric:
		if f, ok := utils.ToFloat64(v); ok {
			if math.IsNaN(f) {
				return nil
			}
			return f
		}
	case t.IsTemporal():
		if ts, ok := utils.ParseTimestamp(v); ok {
			return ts
		}
	}

	return decodeNumber(v)
}

// decodeNumber turns a json.Number into int64, or float64 when it is not a
// whole number in range. Other values are returned as is.
func decodeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return v
}

// naiveTimestampLayout renders timestamp without time zone columns. Offset-less
// input parses as UTC, so the UTC wall clock is the original wall clock.
const naiveTimestampLayout = "2006-01-02T15:04:05.999999999"

// upsertRows renders the rows of s for the remote. Declared integer columns
// holding whole floats become int64 and non-finite floats become null or the
// Postgres infinity literals. Time values become ISO 8601 strings in loc;
// dates keep their wall date and naive timestamps their UTC wall clock.
func upsertRows(schema *models.TableSchema, s *models.Snapshot, loc *time.Location) []models.Row {
	rows := make([]models.Row, len(s.Rows))
	for i, r := range s.Rows {
		out := make(models.Row, len(s.Columns))
		for _, c := range s.Columns {
			var t models.DeclaredType
			if col, ok := schema.Column(c); ok {
				t = col.Type
			}
			out[c] = uploadValue(t, r[c], loc)
		}
		rows[i] = out
	}
	return rows
}

func uploadValue(t models.DeclaredType, v any, loc *time.Location) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		switch t {
		case models.Date:
			return x.Format(time.DateOnly)
		case models.Timestamp:
			return x.UTC().Format(naiveTimestampLayout)
		}
		return utils.FormatInLocation(x, loc)
	case float32:
		return uploadValue(t, float64(x), loc)
	case float64:
		switch {
		case math.IsNaN(x):
			return nil
		case math.IsInf(x, 1):
			return "Infinity"
		case math.IsInf(x, -1):
			return "-Infinity"
		}
		if t.IsInteger() {
			if i, ok := utils.ToInt64(x); ok {
				return i
			}
		}
	}
	return v
}

// deleteKeys projects the rows of s onto the primary-key columns. A null key
// component is an error: such a row cannot be addressed remotely.
func deleteKeys(s *models.Snapshot, primaryKeys []string) ([]models.Row, error) {
	keys := make([]models.Row, len(s.Rows))
	for i, r := range s.Rows {
		key := make(models.Row, len(primaryKeys))
		for _, pk := range primaryKeys {
			v, ok := r[pk]
			if !ok || isNull(v) {
				return nil, fmt.Errorf("%w: %s in row %d", models.ErrNullPrimaryKeyPart, pk, i)
			}
			key[pk] = v
		}
		keys[i] = key
	}
	return keys, nil
}

func allNull(values []any) bool {
	for _, v := range values {
		if !isNull(v) {
			return false
		}
	}
	return true
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	f, ok := v.(float64)
	return ok && math.IsNaN(f)
}

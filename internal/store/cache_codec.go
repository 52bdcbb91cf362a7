package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
)

// persistedSnapshot is the on-disk form of a snapshot. Types are stored so
// that values decode back into the representation they were hashed in.
type persistedSnapshot struct {
	Columns []string                    `json:"columns"`
	Types   map[string]models.LocalType `json:"types"`
	Rows    []map[string]any            `json:"rows"`
}

// persistedMetadata is the on-disk form of the cache metadata artifact.
type persistedMetadata struct {
	Stats    models.RemoteMetadata `json:"stats"`
	DataHash string                `json:"data_hash"`
}

func encodeSnapshot(s *models.Snapshot) persistedSnapshot {
	p := persistedSnapshot{
		Columns: s.Columns,
		Types:   s.Types,
		Rows:    make([]map[string]any, len(s.Rows)),
	}
	for i, r := range s.Rows {
		p.Rows[i] = encodeRow(r)
	}
	return p
}

func encodeRow(r models.Row) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = encodeValue(v)
	}
	return out
}

// encodeValue makes non-finite floats representable in JSON: NaN is null,
// infinities are the strings "+Inf" and "-Inf".
func encodeValue(v any) any {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return v
	}
	switch {
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return v
}

func decodeSnapshot(p persistedSnapshot) (*models.Snapshot, error) {
	if p.Columns == nil {
		return nil, fmt.Errorf("%w: snapshot has no columns", ErrCacheCorrupted)
	}
	s := &models.Snapshot{
		Columns: p.Columns,
		Types:   p.Types,
		Rows:    make([]models.Row, len(p.Rows)),
	}
	if s.Types == nil {
		s.Types = make(map[string]models.LocalType)
	}
	for i, raw := range p.Rows {
		s.Rows[i] = decodeRow(raw, s.Types)
	}
	return s, nil
}

func decodeRow(raw map[string]any, types map[string]models.LocalType) models.Row {
	r := make(models.Row, len(raw))
	for k, v := range raw {
		lt, ok := types[k]
		if !ok {
			lt = models.Object
		}
		r[k] = decodeValue(v, lt)
	}
	return r
}

// decodeValue restores the in-memory representation of a JSON-decoded
// value for the column's local type. Values that do not fit the type are
// kept as decoded.
func decodeValue(v any, lt models.LocalType) any {
	if v == nil {
		return nil
	}

	switch {
	case lt.IsInteger():
		if i, ok := utils.ToInt64(v); ok {
			return i
		}
		if u, ok := parseUint(v); ok {
			return u
		}
	case lt.IsFloat():
		if s, ok := v.(string); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
		if f, ok := utils.ToFloat64(v); ok {
			return f
		}
	case lt.IsTemporal():
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				return t
			}
		}
	}

	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		if u, ok := parseUint(n); ok {
			return u
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}

// parseUint restores unsigned integers above math.MaxInt64, which JSON
// stores as plain digits.
func parseUint(v any) (uint64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	u, err := strconv.ParseUint(n.String(), 10, 64)
	return u, err == nil
}

// decodeJSON decodes r into dst keeping numbers exact.
func decodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheCorrupted, err)
	}
	return nil
}

func decodeJSONBytes(b []byte, dst any) error {
	return decodeJSON(bytes.NewReader(b), dst)
}

func checkTableName(table string) error {
	if table == "" || table == "." || table == ".." || filepath.Base(table) != table {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return nil
}

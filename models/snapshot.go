package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Row maps a column name to its locally typed value. A nil value is null.
type Row map[string]any

// Snapshot is one ordered view of a table's rows.
//
// Snapshots handed to the diff engine or stored in a cache entry are treated
// as read-only; operations that derive new snapshots copy rows.
type Snapshot struct {
	Columns []string             `json:"columns"`
	Types   map[string]LocalType `json:"types"`
	Rows    []Row                `json:"rows"`
}

// NewSnapshot builds a snapshot and infers a local type for every column.
// When columns is empty the column set is collected from the rows in sorted
// order.
func NewSnapshot(columns []string, rows []Row) *Snapshot {
	if len(columns) == 0 {
		columns = collectColumns(rows)
	}
	if rows == nil {
		rows = []Row{}
	}

	s := &Snapshot{
		Columns: columns,
		Types:   make(map[string]LocalType, len(columns)),
		Rows:    rows,
	}
	for _, c := range columns {
		s.Types[c] = InferLocalType(s.Values(c))
	}
	return s
}

func collectColumns(rows []Row) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, r := range rows {
		for c := range r {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				cols = append(cols, c)
			}
		}
	}
	slices.Sort(cols)
	return cols
}

// Len returns the number of rows; a nil snapshot has none.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Type returns the local type of column, Object if it is unknown.
func (s *Snapshot) Type(column string) LocalType {
	if t, ok := s.Types[column]; ok {
		return t
	}
	return Object
}

// HasColumn reports whether column belongs to the snapshot.
func (s *Snapshot) HasColumn(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Values returns the column's values in row order.
func (s *Snapshot) Values(column string) []any {
	values := make([]any, len(s.Rows))
	for i, r := range s.Rows {
		values[i] = r[column]
	}
	return values
}

// Select returns a new snapshot holding copies of the rows at idx, keeping
// the column order and types of s.
func (s *Snapshot) Select(idx []int) *Snapshot {
	out := &Snapshot{
		Columns: append([]string(nil), s.Columns...),
		Types:   make(map[string]LocalType, len(s.Types)),
		Rows:    make([]Row, 0, len(idx)),
	}
	for k, v := range s.Types {
		out.Types[k] = v
	}
	for _, i := range idx {
		out.Rows = append(out.Rows, s.Rows[i].Clone())
	}
	return out
}

// Clone copies the row map. Values are shared.
func (r Row) Clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// InferLocalType derives the local representation of a column from its
// values: all-null columns are Object, integer columns Int64, columns mixing
// integers and floats Float64, time values DateTimeTZ. Any other mixture is
// Object.
func InferLocalType(values []any) LocalType {
	var seen LocalType
	for _, v := range values {
		if v == nil {
			continue
		}
		t := valueType(v)
		switch {
		case seen == "":
			seen = t
		case seen == t:
		case seen.IsNumeric() && t.IsNumeric():
			seen = Float64
		default:
			return Object
		}
	}
	if seen == "" {
		return Object
	}
	return seen
}

func valueType(v any) LocalType {
	switch x := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int64
	case float32, float64:
		return Float64
	case json.Number:
		if strings.ContainsAny(x.String(), ".eE") {
			return Float64
		}
		return Int64
	case bool:
		return Bool
	case string:
		return String
	case time.Time:
		return DateTimeTZ
	default:
		return Object
	}
}

// Key returns the primary-key tuple of r as a single comparable string.
// format renders one component.
func (r Row) Key(columns []string, format func(any) string) string {
	if len(columns) == 1 {
		return format(r[columns[0]])
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		v := format(r[c])
		parts[i] = fmt.Sprintf("%d:%s", len(v), v)
	}
	return strings.Join(parts, "|")
}

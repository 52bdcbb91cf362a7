package diff

import (
	"math"
	"reflect"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
)

const (
	relTolerance = 1e-5
	absTolerance = 1e-8
)

// DefaultIgnoredColumns are skipped by NewComparer when no columns are given.
var DefaultIgnoredColumns = []string{models.UpdatedAtColumn, models.CreatedAtColumn}

// Comparer is the tolerant RowComparer.
type Comparer struct {
	ignored map[string]struct{}
}

// NewComparer builds a Comparer skipping ignored columns, or
// DefaultIgnoredColumns when none are given. updated_at is always skipped.
func NewComparer(ignored ...string) *Comparer {
	if len(ignored) == 0 {
		ignored = DefaultIgnoredColumns
	}
	c := &Comparer{ignored: make(map[string]struct{}, len(ignored)+1)}
	c.ignored[models.UpdatedAtColumn] = struct{}{}
	for _, col := range ignored {
		c.ignored[col] = struct{}{}
	}
	return c
}

// RowsEqual compares every non-ignored column of src against dst, using
// types (the source snapshot's local types) to pick the comparison rule.
// A column missing from dst compares as null.
func (c *Comparer) RowsEqual(src, dst models.Row, types map[string]models.LocalType) bool {
	for col, s := range src {
		if _, skip := c.ignored[col]; skip {
			continue
		}
		lt, ok := types[col]
		if !ok {
			lt = models.Object
		}
		if !ValuesEqual(s, dst[col], lt) {
			return false
		}
	}
	return true
}

// ValuesEqual compares one cell pair under the rules for local type lt.
//
// Integer columns compare exactly. Float columns compare within tolerance
// and, failing that, fall through to direct comparison and the timestamp
// text fallback. Temporal columns compare instants when both sides parse.
func ValuesEqual(s, d any, lt models.LocalType) bool {
	sNull, dNull := isNull(s), isNull(d)
	if sNull && dNull {
		return true
	}
	if sNull != dNull {
		return false
	}

	switch {
	case lt.IsInteger():
		a, okA := utils.ToInt64(s)
		b, okB := utils.ToInt64(d)
		if okA && okB {
			return a == b
		}
	case lt.IsFloat():
		a, okA := utils.ToFloat64(s)
		b, okB := utils.ToFloat64(d)
		if okA && okB && isClose(a, b) {
			return true
		}
	case lt.IsTemporal():
		a, okA := utils.ParseTimestamp(s)
		b, okB := utils.ParseTimestamp(d)
		if okA && okB {
			return a.Equal(b)
		}
	}

	if directEqual(s, d) {
		return true
	}

	return sameInstantText(s, d)
}

// isClose mirrors the usual approximate equality: |a-b| <= atol + rtol*|b|.
func isClose(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= absTolerance+relTolerance*math.Abs(b)
}

func directEqual(a, b any) bool {
	if fa, ok := utils.ToFloat64(a); ok {
		fb, ok := utils.ToFloat64(b)
		return ok && fa == fb
	}

	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case map[string]any, []any:
		return utils.CanonicalValue(a) == utils.CanonicalValue(b)
	}

	return reflect.DeepEqual(a, b)
}

// sameInstantText handles text that differs only in timestamp formatting,
// e.g. a T separator against a space.
func sameInstantText(s, d any) bool {
	ss, ok := s.(string)
	if !ok {
		return false
	}
	ds, ok := d.(string)
	if !ok {
		return false
	}
	a, ok := utils.ParseTimestamp(ss)
	if !ok {
		return false
	}
	b, ok := utils.ParseTimestamp(ds)
	if !ok {
		return false
	}
	return a.Equal(b)
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	f, ok := v.(float64)
	return ok && math.IsNaN(f)
}

package validators

import (
	"math"
	"slices"

	"github.com/MKhiriev/go-table-mirror/internal/utils"
	"github.com/MKhiriev/go-table-mirror/models"
)

// TypeCompatibilityValidator is the concrete ColumnValidator. It is
// stateless and safe for concurrent use.
type TypeCompatibilityValidator struct {
}

func NewTypeCompatibilityValidator() *TypeCompatibilityValidator {
	return &TypeCompatibilityValidator{}
}

func (v *TypeCompatibilityValidator) Classify(t models.DeclaredType) ([]models.LocalType, bool) {
	return models.Acceptable(t)
}

// IsColumnWritable applies the writability rules in order:
//
//  1. types outside the compatibility table are always writable;
//  2. an all-null column is writable into any type accepting a numeric or
//     text-like representation;
//  3. integer data is writable if an integer downcast or a float upcast
//     covering [min, max] is accepted;
//  4. float data is writable if a float range covering [min, max] is
//     accepted, or an integer range is when no value has a fractional part;
//  5. date and timestamp columns require every value to parse;
//  6. anything else needs an exact representation match.
func (v *TypeCompatibilityValidator) IsColumnWritable(col models.ColumnDescriptor, values []any, local models.LocalType) bool {
	accepted, known := v.Classify(col.Type)
	if !known || len(accepted) == 0 {
		return true
	}

	if allNull(values) && acceptsNullableRepresentation(accepted) {
		return true
	}

	switch {
	case local.IsInteger():
		return anyAccepted(intCasts(values), accepted)
	case local.IsFloat():
		return anyAccepted(floatCasts(values), accepted)
	case col.Type.IsTemporal():
		return allTimestamps(values)
	default:
		return slices.Contains(accepted, local)
	}
}

func acceptsNullableRepresentation(accepted []models.LocalType) bool {
	for _, t := range accepted {
		if t.IsNumeric() || t.IsTextLike() {
			return true
		}
	}
	return false
}

func anyAccepted(casts, accepted []models.LocalType) bool {
	for _, c := range casts {
		if slices.Contains(accepted, c) {
			return true
		}
	}
	return false
}

// intCasts lists the representations integer data fits into: every integer
// range covering [min, max] followed by every float range that does.
func intCasts(values []any) []models.LocalType {
	lo, hi := bounds(values)

	var casts []models.LocalType
	for _, t := range models.IntegerTypes {
		if models.IntRanges[t].Contains(lo, hi) {
			casts = append(casts, t)
		}
	}
	for _, t := range models.FloatTypes {
		if models.FloatRanges[t].Contains(lo, hi) {
			casts = append(casts, t)
		}
	}
	return casts
}

// floatCasts lists the representations float data fits into. Integer
// ranges are considered only when the sum of fractional parts is exactly
// zero, which is the case for whole numbers promoted to float by nulls.
func floatCasts(values []any) []models.LocalType {
	lo, hi := bounds(values)

	var casts []models.LocalType
	for _, t := range models.FloatTypes {
		if models.FloatRanges[t].Contains(lo, hi) {
			casts = append(casts, t)
		}
	}
	if fractionalSum(values) == 0 {
		for _, t := range models.IntegerTypes {
			if models.IntRanges[t].Contains(lo, hi) {
				casts = append(casts, t)
			}
		}
	}
	return casts
}

// bounds returns the min and max of the non-null numeric values, [0, 0]
// when there are none.
func bounds(values []any) (lo, hi float64) {
	first := true
	for _, v := range values {
		f, ok := utils.ToFloat64(v)
		if !ok || math.IsNaN(f) {
			continue
		}
		if first {
			lo, hi, first = f, f, false
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	return lo, hi
}

func fractionalSum(values []any) float64 {
	var sum float64
	for _, v := range values {
		f, ok := utils.ToFloat64(v)
		if !ok || math.IsNaN(f) {
			continue
		}
		sum += f - math.Floor(f)
	}
	return sum
}

func allTimestamps(values []any) bool {
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := utils.ParseTimestamp(v); !ok {
			return false
		}
	}
	return true
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

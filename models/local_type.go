package models

import "math"

// LocalType tags the in-memory representation a column is currently held as.
type LocalType string

const (
	Int16      LocalType = "int16"
	Int32      LocalType = "int32"
	Int64      LocalType = "int64"
	Float32    LocalType = "float32"
	Float64    LocalType = "float64"
	Bool       LocalType = "bool"
	String     LocalType = "string"
	Object     LocalType = "object"
	DateTime   LocalType = "datetime"
	DateTimeTZ LocalType = "datetime_tz"
)

// IntegerTypes lists integer representations from narrowest to widest.
var IntegerTypes = []LocalType{Int16, Int32, Int64}

// FloatTypes lists floating representations from narrowest to widest.
var FloatTypes = []LocalType{Float32, Float64}

// IntRange is the closed value range of an integer representation.
type IntRange struct {
	Min int64
	Max int64
}

// Contains reports whether [lo, hi] fits into the range.
func (r IntRange) Contains(lo, hi float64) bool {
	return lo >= float64(r.Min) && hi <= float64(r.Max)
}

// FloatRange is the closed finite value range of a floating representation.
type FloatRange struct {
	Min float64
	Max float64
}

// Contains reports whether [lo, hi] fits into the range.
func (r FloatRange) Contains(lo, hi float64) bool {
	return lo >= r.Min && hi <= r.Max
}

// IntRanges holds the downcast targets for integer data.
var IntRanges = map[LocalType]IntRange{
	Int16: {Min: math.MinInt16, Max: math.MaxInt16},
	Int32: {Min: math.MinInt32, Max: math.MaxInt32},
	Int64: {Min: math.MinInt64, Max: math.MaxInt64},
}

// FloatRanges holds the downcast and upcast targets for floating data.
var FloatRanges = map[LocalType]FloatRange{
	Float32: {Min: -math.MaxFloat32, Max: math.MaxFloat32},
	Float64: {Min: -math.MaxFloat64, Max: math.MaxFloat64},
}

func (t LocalType) IsInteger() bool {
	_, ok := IntRanges[t]
	return ok
}

func (t LocalType) IsFloat() bool {
	_, ok := FloatRanges[t]
	return ok
}

func (t LocalType) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

func (t LocalType) IsTemporal() bool {
	return t == DateTime || t == DateTimeTZ
}

// IsTextLike reports whether the representation can carry arbitrary text.
func (t LocalType) IsTextLike() bool {
	return t == String || t == Object
}

func (t LocalType) String() string {
	return string(t)
}

// acceptable is the declared type compatibility table. The first entry of
// every set is the representation used for empty snapshots.
var acceptable = map[DeclaredType][]LocalType{
	SmallInt:        {Int16},
	Integer:         {Int32},
	BigInt:          {Int64},
	Real:            {Float32},
	DoublePrecision: {Float64},
	Numeric:         {Float64},
	Boolean:         {Bool},
	Text:            {Object, String},
	Date:            {DateTime},
	Timestamp:       {DateTime},
	TimestampTZ:     {DateTimeTZ},
	JSON:            {Object, String},
	Point:           {Object, String},
	Other:           {Object, String},
}

// Acceptable returns the local representations a declared type accepts
// directly. ok is false for types outside the table (Custom), which callers
// must treat as always accepted.
func Acceptable(t DeclaredType) (types []LocalType, ok bool) {
	types, ok = acceptable[t]
	if !ok {
		return nil, false
	}
	out := make([]LocalType, len(types))
	copy(out, types)
	return out, true
}

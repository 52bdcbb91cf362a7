// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// DeclaredType is the storage type of a remote column as reported by schema
// introspection. The vocabulary is closed: anything the mirror does not know
// how to validate is either Other (a known opaque type) or Custom (enums,
// domains and other user-defined types).
type DeclaredType string

const (
	SmallInt        DeclaredType = "smallint"
	Integer         DeclaredType = "integer"
	BigInt          DeclaredType = "bigint"
	Real            DeclaredType = "real"
	DoublePrecision DeclaredType = "double precision"
	Numeric         DeclaredType = "numeric"
	Boolean         DeclaredType = "boolean"
	Text            DeclaredType = "text"
	Date            DeclaredType = "date"
	Timestamp       DeclaredType = "timestamp"
	TimestampTZ     DeclaredType = "timestamptz"
	JSON            DeclaredType = "json"
	Point           DeclaredType = "point"
	Other           DeclaredType = "other"
	Custom          DeclaredType = "custom"
)

// udtNames maps Postgres udt_name values to the declared type vocabulary.
var udtNames = map[string]DeclaredType{
	"int2":        SmallInt,
	"int4":        Integer,
	"int8":        BigInt,
	"float4":      Real,
	"float8":      DoublePrecision,
	"numeric":     Numeric,
	"bool":        Boolean,
	"varchar":     Text,
	"bpchar":      Text,
	"text":        Text,
	"name":        Text,
	"citext":      Text,
	"date":        Date,
	"timestamp":   Timestamp,
	"timestamptz": TimestampTZ,
	"json":        JSON,
	"jsonb":       JSON,
	"point":       Point,
	"uuid":        Other,
	"time":        Other,
	"timetz":      Other,
	"interval":    Other,
	"bytea":       Other,
	"inet":        Other,
	"cidr":        Other,
	"macaddr":     Other,
	"line":        Other,
	"lseg":        Other,
	"box":         Other,
	"path":        Other,
	"polygon":     Other,
	"circle":      Other,
	"tsvector":    Other,
	"xml":         Other,
}

// ParseDeclaredType converts a udt_name into a DeclaredType.
// Array types (udt_name starting with "_") are Other; unknown names are Custom.
func ParseDeclaredType(udtName string) DeclaredType {
	name := strings.ToLower(strings.TrimSpace(udtName))
	if t, ok := udtNames[name]; ok {
		return t
	}
	if strings.HasPrefix(name, "_") {
		return Other
	}
	return Custom
}

// IsTemporal reports whether values of this type must parse as timestamps.
func (t DeclaredType) IsTemporal() bool {
	return t == Date || t == Timestamp || t == TimestampTZ
}

// IsInteger reports whether the remote column stores whole numbers.
func (t DeclaredType) IsInteger() bool {
	return t == SmallInt || t == Integer || t == BigInt
}

func (t DeclaredType) String() string {
	return string(t)
}

// Package utils provides general-purpose helpers used across the mirror:
// typed context keys, pooled content hashing, canonical value rendering,
// timestamp parsing, run identifiers and the HTTP client wrapper.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// RunIDCtxKey stores the identifier of the current mirror or refresh run.
var RunIDCtxKey = contextKey("runID")

// TableCtxKey stores the name of the table a run operates on.
var TableCtxKey = contextKey("table")

// WithRunID returns a copy of ctx carrying runID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDCtxKey, runID)
}

// GetRunIDFromContext retrieves the run identifier from the context.
func GetRunIDFromContext(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(RunIDCtxKey).(string)
	return runID, ok
}

// WithTable returns a copy of ctx carrying the table name.
func WithTable(ctx context.Context, table string) context.Context {
	return context.WithValue(ctx, TableCtxKey, table)
}

// GetTableFromContext retrieves the table name from the context.
func GetTableFromContext(ctx context.Context) (string, bool) {
	table, ok := ctx.Value(TableCtxKey).(string)
	return table, ok
}

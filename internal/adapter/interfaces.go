// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the bulk data path between the mirror and the
// remote tables.
//
// The remote exposes tables through a PostgREST-compatible REST API: rows are
// read page by page with GET, written with POST using merge-duplicates
// resolution and removed with DELETE filtered by primary key. Direct
// database access (metadata, schema, ANALYZE) lives in the store package.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrRemoteUnavailable] for 5xx and 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-table-mirror/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// BulkReader downloads whole tables.
type BulkReader interface {
	// ReadAll downloads every row of table, paging through it in orderBy
	// order. An empty table yields a snapshot with no rows and no columns.
	ReadAll(ctx context.Context, table string, orderBy ...string) (*models.Snapshot, error)
}

// BulkWriter applies row-level changes to a remote table.
type BulkWriter interface {
	// Upsert inserts rows, updating the existing row when onConflict
	// columns collide.
	Upsert(ctx context.Context, table string, rows []models.Row, onConflict []string) error

	// Delete removes the rows identified by keys. Every key row holds the
	// same primary-key columns and no nulls.
	Delete(ctx context.Context, table string, keys []models.Row) error
}

// RestAdapter combines both directions of the bulk data path.
type RestAdapter interface {
	BulkReader
	BulkWriter
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/models"
)

const (
	dataFileName     = "data.json"
	metadataFileName = "cache_metadata.json"
	schemaFileName   = "schema.json"
)

type fileCacheStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileCacheStore returns a [CacheStore] keeping every table in its own
// directory under dir:
//
//	<dir>/<table>/data.json            snapshot columns, types and rows
//	<dir>/<table>/cache_metadata.json  remote stats and content hash
//	<dir>/<table>/schema.json          declared columns
//
// Files are replaced atomically. The metadata file is written last, so its
// presence implies a complete data file.
func NewFileCacheStore(dir string, logger *logger.Logger) (CacheStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}
	return &fileCacheStore{
		dir:    dir,
		logger: logger,
	}, nil
}

func (f *fileCacheStore) LoadEntry(ctx context.Context, table string) (*models.CacheEntry, error) {
	if err := checkTableName(table); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var meta persistedMetadata
	if err := f.readJSON(table, metadataFileName, &meta); err != nil {
		return nil, err
	}

	var data persistedSnapshot
	if err := f.readJSON(table, dataFileName, &data); err != nil {
		return nil, err
	}

	snapshot, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	if meta.DataHash == "" {
		return nil, fmt.Errorf("%w: empty data hash", ErrCacheCorrupted)
	}

	metadata := meta.Stats
	return &models.CacheEntry{
		Snapshot: snapshot,
		Metadata: &metadata,
		Hash:     meta.DataHash,
	}, nil
}

func (f *fileCacheStore) SaveEntry(ctx context.Context, table string, entry *models.CacheEntry) error {
	if err := checkTableName(table); err != nil {
		return err
	}
	if !entry.IsComplete() {
		return ErrNilEntry
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := f.writeJSON(table, dataFileName, encodeSnapshot(entry.Snapshot)); err != nil {
		f.logger.Err(err).
			Str("func", "fileCacheStore.SaveEntry").
			Str("table", table).
			Msg("failed to write cache data")
		return err
	}

	meta := persistedMetadata{Stats: *entry.Metadata, DataHash: entry.Hash}
	if err := f.writeJSON(table, metadataFileName, meta); err != nil {
		f.logger.Err(err).
			Str("func", "fileCacheStore.SaveEntry").
			Str("table", table).
			Msg("failed to write cache metadata")
		return err
	}

	return nil
}

func (f *fileCacheStore) LoadSchema(ctx context.Context, table string) (*models.TableSchema, error) {
	if err := checkTableName(table); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var schema models.TableSchema
	if err := f.readJSON(table, schemaFileName, &schema); err != nil {
		return nil, err
	}

	restored, err := models.NewTableSchema(schema.Table, schema.Columns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupted, err)
	}
	return restored, nil
}

func (f *fileCacheStore) SaveSchema(ctx context.Context, schema *models.TableSchema) error {
	if schema == nil {
		return ErrNilEntry
	}
	if err := checkTableName(schema.Table); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.writeJSON(schema.Table, schemaFileName, schema)
}

func (f *fileCacheStore) readJSON(table, name string, dst any) error {
	file, err := os.Open(filepath.Join(f.dir, table, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s/%s", ErrCacheNotFound, table, name)
	}
	if err != nil {
		return fmt.Errorf("error reading cache file: %w", err)
	}
	defer file.Close()

	return decodeJSON(file, dst)
}

// writeJSON writes v to a temporary file in the table directory and renames
// it over the target.
func (f *fileCacheStore) writeJSON(table, name string, v any) error {
	dir := filepath.Join(f.dir, table)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating table cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeJSONTo(tmp, v); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("error replacing cache file: %w", err)
	}
	return nil
}

func writeJSONTo(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("error encoding cache file: %w", err)
	}
	return nil
}

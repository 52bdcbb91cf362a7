package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/models"
)

// rows per INSERT statement, bounded by SQLite's host parameter limit
const sqliteRowBatch = 200

type sqliteCacheStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteCacheStore returns a [CacheStore] backed by the migrated SQLite
// database db. Entries are written inside a single transaction.
func NewSQLiteCacheStore(db *DB, logger *logger.Logger) CacheStore {
	return &sqliteCacheStore{
		DB:     db,
		logger: logger,
	}
}

func (s *sqliteCacheStore) LoadEntry(ctx context.Context, table string) (*models.CacheEntry, error) {
	log := logger.FromContextOr(ctx, s.logger)

	query, args, err := sq.
		Select("columns", "types", "last_modified", "record_count", "total_modifications", "data_hash").
		From("cache_entries").
		Where(sq.Eq{"table_name": table}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		columnsJSON, typesJSON, lastModified, hash string
		recordCount, totalModifications            int64
	)
	err = s.DB.QueryRowContext(ctx, query, args...).
		Scan(&columnsJSON, &typesJSON, &lastModified, &recordCount, &totalModifications, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCacheNotFound, table)
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteCacheStore.LoadEntry").
			Str("table", table).
			Msg("failed to query cache entry")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var data persistedSnapshot
	if err := decodeJSONBytes([]byte(columnsJSON), &data.Columns); err != nil {
		return nil, err
	}
	if err := decodeJSONBytes([]byte(typesJSON), &data.Types); err != nil {
		return nil, err
	}
	modified, err := time.Parse(time.RFC3339Nano, lastModified)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupted, err)
	}

	data.Rows, err = s.loadRows(ctx, table)
	if err != nil {
		return nil, err
	}

	snapshot, err := decodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	return &models.CacheEntry{
		Snapshot: snapshot,
		Metadata: &models.RemoteMetadata{
			LastModified:       modified,
			RecordCount:        recordCount,
			TotalModifications: totalModifications,
		},
		Hash: hash,
	}, nil
}

func (s *sqliteCacheStore) loadRows(ctx context.Context, table string) ([]map[string]any, error) {
	log := logger.FromContextOr(ctx, s.logger)

	query, args, err := sq.
		Select("data").
		From("cache_rows").
		Where(sq.Eq{"table_name": table}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqliteCacheStore.loadRows").
			Str("table", table).
			Msg("failed to query cached rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]map[string]any, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		var row map[string]any
		if err := decodeJSONBytes([]byte(raw), &row); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "sqliteCacheStore.loadRows").
			Str("table", table).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

func (s *sqliteCacheStore) SaveEntry(ctx context.Context, table string, entry *models.CacheEntry) (err error) {
	if table == "" {
		return ErrInvalidTableName
	}
	if !entry.IsComplete() {
		return ErrNilEntry
	}
	log := logger.FromContextOr(ctx, s.logger)

	columnsJSON, err := json.Marshal(entry.Snapshot.Columns)
	if err != nil {
		return fmt.Errorf("error encoding cache columns: %w", err)
	}
	typesJSON, err := json.Marshal(entry.Snapshot.Types)
	if err != nil {
		return fmt.Errorf("error encoding cache types: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	upsert, args, err := sq.
		Insert("cache_entries").
		Columns("table_name", "columns", "types", "last_modified", "record_count", "total_modifications", "data_hash", "saved_at").
		Values(
			table,
			string(columnsJSON),
			string(typesJSON),
			entry.Metadata.LastModified.UTC().Format(time.RFC3339Nano),
			entry.Metadata.RecordCount,
			entry.Metadata.TotalModifications,
			entry.Hash,
			time.Now().UTC().Format(time.RFC3339Nano),
		).
		Suffix(`ON CONFLICT (table_name) DO UPDATE SET
			columns = excluded.columns,
			types = excluded.types,
			last_modified = excluded.last_modified,
			record_count = excluded.record_count,
			total_modifications = excluded.total_modifications,
			data_hash = excluded.data_hash,
			saved_at = excluded.saved_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, upsert, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteCacheStore.SaveEntry").
			Str("table", table).
			Msg("failed to upsert cache entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	del, args, err := sq.Delete("cache_rows").Where(sq.Eq{"table_name": table}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rows := entry.Snapshot.Rows
	for start := 0; start < len(rows); start += sqliteRowBatch {
		end := min(start+sqliteRowBatch, len(rows))

		insert := sq.Insert("cache_rows").Columns("table_name", "position", "data")
		for i := start; i < end; i++ {
			raw, marshalErr := json.Marshal(encodeRow(rows[i]))
			if marshalErr != nil {
				err = fmt.Errorf("error encoding cache row %d: %w", i, marshalErr)
				return err
			}
			insert = insert.Values(table, i, string(raw))
		}

		query, args, buildErr := insert.ToSql()
		if buildErr != nil {
			err = fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "sqliteCacheStore.SaveEntry").
				Str("table", table).
				Int("batch_start", start).
				Msg("failed to insert cached rows")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (s *sqliteCacheStore) LoadSchema(ctx context.Context, table string) (*models.TableSchema, error) {
	query, args, err := sq.
		Select("columns").
		From("cache_schemas").
		Where(sq.Eq{"table_name": table}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var raw string
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: schema of %s", ErrCacheNotFound, table)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var columns []models.ColumnDescriptor
	if err := decodeJSONBytes([]byte(raw), &columns); err != nil {
		return nil, err
	}
	schema, err := models.NewTableSchema(table, columns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupted, err)
	}
	return schema, nil
}

func (s *sqliteCacheStore) SaveSchema(ctx context.Context, schema *models.TableSchema) error {
	if schema == nil {
		return ErrNilEntry
	}

	raw, err := json.Marshal(schema.Columns)
	if err != nil {
		return fmt.Errorf("error encoding schema: %w", err)
	}

	query, args, err := sq.
		Insert("cache_schemas").
		Columns("table_name", "columns", "saved_at").
		Values(schema.Table, string(raw), time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT (table_name) DO UPDATE SET columns = excluded.columns, saved_at = excluded.saved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).
			Str("func", "sqliteCacheStore.SaveSchema").
			Str("table", schema.Table).
			Msg("failed to save schema")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

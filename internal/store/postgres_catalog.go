package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/models"
)

type postgresCatalog struct {
	*DB
	schema string
	logger *logger.Logger
}

// NewPostgresCatalog returns a [RemoteCatalog] reading metadata and column
// declarations of tables in schema straight from PostgreSQL.
func NewPostgresCatalog(db *DB, schema string, logger *logger.Logger) RemoteCatalog {
	if schema == "" {
		schema = "public"
	}
	return &postgresCatalog{
		DB:     db,
		schema: schema,
		logger: logger,
	}
}

// GetRemoteMetadata reads the newest updated_at together with the row and
// modification counters from pg_stat_user_tables. Missing values fall back
// to the empty-table defaults.
func (p *postgresCatalog) GetRemoteMetadata(ctx context.Context, table string) (models.RemoteMetadata, error) {
	log := logger.FromContextOr(ctx, p.logger)

	query, args, err := lastModifiedQuery(p.schema, table)
	if err != nil {
		return models.RemoteMetadata{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var lastModified sql.NullTime
	if err = p.DB.QueryRowContext(ctx, query, args...).Scan(&lastModified); err != nil {
		log.Err(err).
			Str("func", "postgresCatalog.GetRemoteMetadata").
			Str("table", table).
			Msg("failed to query last modification time")
		return models.RemoteMetadata{}, fmt.Errorf("%w: %w", ErrExecutingQuery, p.mapRemoteError(err))
	}

	query, args, err = tableStatsQuery(p.schema, table)
	if err != nil {
		return models.RemoteMetadata{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var recordCount, totalModifications sql.NullInt64
	err = p.DB.QueryRowContext(ctx, query, args...).Scan(&recordCount, &totalModifications)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).
			Str("func", "postgresCatalog.GetRemoteMetadata").
			Str("table", table).
			Msg("failed to query table statistics")
		return models.RemoteMetadata{}, fmt.Errorf("%w: %w", ErrExecutingQuery, p.mapRemoteError(err))
	}

	return models.NewRemoteMetadata(nullTime(lastModified), nullInt64(recordCount), nullInt64(totalModifications)), nil
}

// GetColumns reads the declared columns with their key and uniqueness
// constraints in ordinal order.
func (p *postgresCatalog) GetColumns(ctx context.Context, table string) (*models.TableSchema, error) {
	log := logger.FromContextOr(ctx, p.logger)

	query, args, err := columnsQuery(p.schema, table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "postgresCatalog.GetColumns").
			Str("table", table).
			Msg("failed to query column declarations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, p.mapRemoteError(err))
	}
	defer rows.Close()

	var columns []models.ColumnDescriptor
	for rows.Next() {
		var (
			name, udtName, isNullable, constraints string
			columnDefault                          sql.NullString
		)
		if err := rows.Scan(&name, &udtName, &isNullable, &columnDefault, &constraints); err != nil {
			log.Err(err).
				Str("func", "postgresCatalog.GetColumns").
				Str("table", table).
				Msg("failed to scan column row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		kinds := parseConstraints(constraints)
		column := models.ColumnDescriptor{
			Name:       name,
			UDTName:    udtName,
			Type:       models.ParseDeclaredType(udtName),
			Nullable:   strings.EqualFold(isNullable, "YES"),
			PrimaryKey: kinds[constraintPrimaryKey],
			Unique:     kinds[constraintUnique],
			ForeignKey: kinds[constraintForeignKey],
			HasDefault: columnDefault.Valid,
		}
		if columnDefault.Valid {
			def := columnDefault.String
			column.Default = &def
		}
		columns = append(columns, column)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "postgresCatalog.GetColumns").
			Str("table", table).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, p.mapRemoteError(err))
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, p.schema, table)
	}

	return models.NewTableSchema(table, columns)
}

// Analyze runs ANALYZE so pg_stat_user_tables reflects the latest writes.
func (p *postgresCatalog) Analyze(ctx context.Context, table string) error {
	if _, err := p.DB.ExecContext(ctx, analyzeStatement(p.schema, table)); err != nil {
		logger.FromContextOr(ctx, p.logger).Err(err).
			Str("func", "postgresCatalog.Analyze").
			Str("table", table).
			Msg("failed to analyze table")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, p.mapRemoteError(err))
	}
	return nil
}

// parseConstraints splits the aggregated constraint list of one column.
func parseConstraints(list string) map[string]bool {
	kinds := make(map[string]bool)
	for _, kind := range strings.Split(list, ",") {
		if kind = strings.TrimSpace(kind); kind != "" {
			kinds[kind] = true
		}
	}
	return kinds
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// constraint types reported by information_schema.table_constraints, plus
// the label columnsQuery gives UNIQUE constraints spanning several columns
const (
	constraintPrimaryKey      = "PRIMARY KEY"
	constraintUnique          = "UNIQUE"
	constraintForeignKey      = "FOREIGN KEY"
	constraintCompositeUnique = "COMPOSITE UNIQUE"
)

// constraintTypeExpr relabels multi-column UNIQUE constraints so a column
// taking part in one is not reported as unique by itself.
const constraintTypeExpr = `CASE WHEN tc.constraint_type = 'UNIQUE' AND (
		SELECT count(*) FROM information_schema.key_column_usage k2
		WHERE k2.constraint_schema = kcu.constraint_schema AND k2.constraint_name = kcu.constraint_name
	) > 1 THEN '` + constraintCompositeUnique + `' ELSE tc.constraint_type END`

func qualifiedTable(schema, table string) string {
	return pgx.Identifier{schema, table}.Sanitize()
}

func lastModifiedQuery(schema, table string) (string, []any, error) {
	return psql.
		Select("max(" + pgx.Identifier{"updated_at"}.Sanitize() + ")").
		From(qualifiedTable(schema, table)).
		ToSql()
}

func tableStatsQuery(schema, table string) (string, []any, error) {
	return psql.
		Select("n_live_tup", "n_tup_ins + n_tup_upd + n_tup_del").
		From("pg_stat_user_tables").
		Where(sq.Eq{"schemaname": schema}).
		Where(sq.Eq{"relname": table}).
		ToSql()
}

func columnsQuery(schema, table string) (string, []any, error) {
	return psql.
		Select(
			"c.column_name",
			"c.udt_name",
			"c.is_nullable",
			"c.column_default",
			"COALESCE(STRING_AGG("+constraintTypeExpr+", ', '), '')",
		).
		From("information_schema.columns c").
		LeftJoin("information_schema.key_column_usage kcu ON c.table_schema = kcu.table_schema AND c.table_name = kcu.table_name AND c.column_name = kcu.column_name").
		LeftJoin("information_schema.table_constraints tc ON kcu.constraint_schema = tc.constraint_schema AND kcu.constraint_name = tc.constraint_name").
		Where(sq.Eq{"c.table_schema": schema}).
		Where(sq.Eq{"c.table_name": table}).
		GroupBy("c.column_name", "c.udt_name", "c.is_nullable", "c.column_default", "c.ordinal_position").
		OrderBy("c.ordinal_position").
		ToSql()
}

func analyzeStatement(schema, table string) string {
	return "ANALYZE " + qualifiedTable(schema, table)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-table-mirror/internal/adapter"
	"github.com/MKhiriev/go-table-mirror/internal/cache"
	"github.com/MKhiriev/go-table-mirror/internal/diff"
	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/metrics"
	"github.com/MKhiriev/go-table-mirror/internal/store"
	"github.com/MKhiriev/go-table-mirror/internal/validators"
	"github.com/MKhiriev/go-table-mirror/models"
)

// TableDeps are the collaborators of a Table. Validator, Differ, Metrics and
// Location default to the standard implementations, a no-op recorder and
// UTC.
type TableDeps struct {
	Catalog   store.RemoteCatalog
	Rest      adapter.RestAdapter
	Cache     store.CacheStore
	Oracle    *cache.Oracle
	Validator validators.ColumnValidator
	Differ    diff.Differ
	Metrics   metrics.Recorder

	Location     *time.Location
	ForceAnalyze bool
}

// Table coordinates one remote table. It is not safe for concurrent use;
// Mirror serializes access per table.
type Table struct {
	name string
	deps TableDeps

	schema *models.TableSchema
	entry  *models.CacheEntry
	state  cache.State

	logger *logger.Logger
}

// NewTable returns an unopened Table for name.
func NewTable(name string, deps TableDeps, logger *logger.Logger) *Table {
	if deps.Oracle == nil {
		deps.Oracle = cache.NewOracle(deps.Cache, logger)
	}
	if deps.Validator == nil {
		deps.Validator = validators.NewTypeCompatibilityValidator()
	}
	if deps.Differ == nil {
		deps.Differ = diff.NewEngine(diff.NewComparer())
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}

	return &Table{
		name:   name,
		deps:   deps,
		state:  cache.StateEmpty,
		logger: logger,
	}
}

// Open implements TableSyncer. The schema is saved next to the cache as a
// companion artifact; failing to save it is logged, not returned.
func (t *Table) Open(ctx context.Context) error {
	log := logger.FromContextOr(ctx, t.logger)

	schema, err := t.deps.Catalog.GetColumns(ctx, t.name)
	if err != nil {
		return fmt.Errorf("get columns of %s: %w", t.name, err)
	}
	if len(schema.PrimaryKeys()) == 0 {
		return fmt.Errorf("%w: %s", models.ErrNoPrimaryKey, t.name)
	}
	t.schema = schema

	if err = t.deps.Cache.SaveSchema(ctx, schema); err != nil {
		log.Warn().Err(err).Str("table", t.name).Msg("failed to save schema copy")
	}

	entry, state, err := t.deps.Oracle.Load(ctx, t.name)
	if err != nil {
		return fmt.Errorf("load cache of %s: %w", t.name, err)
	}
	t.entry = entry
	t.setState(ctx, state)

	log.Info().
		Str("table", t.name).
		Int("columns", len(schema.Columns)).
		Strs("primary_keys", schema.PrimaryKeys()).
		Str("state", state.String()).
		Msg("table opened")
	return nil
}

// ValidateCache implements TableSyncer. Cache corruption is never returned:
// any failed check leads to a rebuild. Remote errors are returned. A cache
// invalidated by a failed write is rebuilt without checking.
func (t *Table) ValidateCache(ctx context.Context) error {
	if t.schema == nil {
		return fmt.Errorf("%w: %s", ErrTableNotOpen, t.name)
	}
	log := logger.FromContextOr(ctx, t.logger)

	if t.state == cache.StateInvalid {
		log.Info().Str("table", t.name).Msg("cache was invalidated, rebuilding")
		return t.rebuild(ctx)
	}

	meta, err := t.deps.Catalog.GetRemoteMetadata(ctx, t.name)
	if err != nil {
		return fmt.Errorf("get metadata of %s: %w", t.name, err)
	}

	reason := t.deps.Oracle.Check(t.entry, meta)
	t.deps.Metrics.CacheChecked(t.name, string(reason))
	if reason == cache.ReasonValid {
		t.setState(ctx, cache.StateValid)
		log.Debug().Str("table", t.name).Msg("cache is valid, using local copy")
		return nil
	}

	log.Info().Str("table", t.name).Str("reason", string(reason)).Msg("cache is invalid, rebuilding")
	t.setState(ctx, cache.StateInvalid)
	return t.rebuild(ctx)
}

func (t *Table) rebuild(ctx context.Context) error {
	log := logger.FromContextOr(ctx, t.logger)
	t.setState(ctx, cache.StateRebuilding)
	t.deps.Metrics.CacheRebuilt(t.name)

	snapshot, err := t.deps.Rest.ReadAll(ctx, t.name, t.schema.PrimaryKeys()...)
	if err != nil {
		t.setState(ctx, cache.StateInvalid)
		return fmt.Errorf("read %s: %w", t.name, err)
	}
	if snapshot.Len() == 0 {
		log.Info().Str("table", t.name).Msg("remote had no rows, using an empty snapshot")
		snapshot = t.schema.EmptySnapshot()
	} else {
		snapshot = conform(t.schema, snapshot)
	}

	if issues := t.deps.Validator.ValidateSnapshot(t.schema, snapshot); len(issues) > 0 {
		log.Warn().Str("table", t.name).Str("issues", issues.String()).Msg("remote rows do not fit the declared schema")
	}

	meta, err := t.deps.Catalog.GetRemoteMetadata(ctx, t.name)
	if err != nil {
		t.setState(ctx, cache.StateInvalid)
		return fmt.Errorf("get metadata of %s: %w", t.name, err)
	}

	return t.updateCache(ctx, meta, snapshot)
}

// Mirror implements TableSyncer:
//
//  1. desired is validated against the schema; any finding aborts with a
//     *models.SchemaViolationError before anything else happens;
//  2. the cache is validated, rebuilding it when needed;
//  3. desired is diffed against the cached snapshot;
//  4. delete keys are checked for nulls, then upserts and deletes are
//     written to the remote;
//  5. only when both writes succeeded the cache is updated with desired and
//     fresh metadata, after an optional ANALYZE.
//
// A failed write leaves the cache untouched and marks it invalid, so the
// next validation re-reads the remote.
func (t *Table) Mirror(ctx context.Context, desired *models.Snapshot) error {
	if desired == nil {
		return ErrNilSnapshot
	}
	if t.schema == nil {
		return fmt.Errorf("%w: %s", ErrTableNotOpen, t.name)
	}
	log := logger.FromContextOr(ctx, t.logger)

	if issues := t.deps.Validator.ValidateSnapshot(t.schema, desired); len(issues) > 0 {
		for _, kind := range []models.IssueKind{
			models.IssueNullability, models.IssueUniqueness, models.IssueType,
			models.IssueJSON, models.IssuePoint, models.IssueMissing, models.IssueUnknown,
		} {
			t.deps.Metrics.SchemaIssues(t.name, string(kind), len(issues.ByKind(kind)))
		}
		log.Error().Str("table", t.name).Strs("columns", issues.Columns()).Msg("desired snapshot does not conform to schema")
		return &models.SchemaViolationError{Table: t.name, Issues: issues}
	}

	if err := t.ValidateCache(ctx); err != nil {
		return err
	}

	desired = conform(t.schema, desired)
	pks := t.schema.PrimaryKeys()

	result, err := t.deps.Differ.Diff(ctx, desired, t.entry.Snapshot, pks)
	if err != nil {
		return fmt.Errorf("diff %s: %w", t.name, err)
	}
	if !result.HasChanges() {
		log.Info().Str("table", t.name).Msg("no upserts or deletes to perform")
		return nil
	}

	var keys []models.Row
	if result.HasDeletes() {
		if keys, err = deleteKeys(result.Deletes, pks); err != nil {
			return fmt.Errorf("delete %s: %w", t.name, err)
		}
	}

	if result.HasUpserts() {
		rows := upsertRows(t.schema, result.Upserts, t.deps.Location)
		if err = t.deps.Rest.Upsert(ctx, t.name, rows, pks); err != nil {
			t.setState(ctx, cache.StateInvalid)
			return fmt.Errorf("upsert %s: %w", t.name, err)
		}
		t.deps.Metrics.RowsWritten(t.name, metrics.OpUpsert, len(rows))
	}

	if len(keys) > 0 {
		if err = t.deps.Rest.Delete(ctx, t.name, keys); err != nil {
			t.setState(ctx, cache.StateInvalid)
			return fmt.Errorf("delete %s: %w", t.name, err)
		}
		t.deps.Metrics.RowsWritten(t.name, metrics.OpDelete, len(keys))
	}

	log.Info().
		Str("table", t.name).
		Int("upserts", result.Upserts.Len()).
		Int("deletes", result.Deletes.Len()).
		Msg("remote table updated")

	if t.deps.ForceAnalyze {
		if err = t.deps.Catalog.Analyze(ctx, t.name); err != nil {
			t.setState(ctx, cache.StateInvalid)
			return fmt.Errorf("analyze %s: %w", t.name, err)
		}
	}

	meta, err := t.deps.Catalog.GetRemoteMetadata(ctx, t.name)
	if err != nil {
		t.setState(ctx, cache.StateInvalid)
		return fmt.Errorf("get metadata of %s: %w", t.name, err)
	}

	return t.updateCache(ctx, meta, desired)
}

// updateCache commits snapshot and meta to the entry. A persistence failure
// keeps the consistent in-memory entry; the stored copy is re-validated on
// the next load.
func (t *Table) updateCache(ctx context.Context, meta models.RemoteMetadata, snapshot *models.Snapshot) error {
	err := t.deps.Oracle.Update(ctx, t.name, t.entry, meta, snapshot)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrPersistFailed):
		logger.FromContextOr(ctx, t.logger).Warn().Err(err).Str("table", t.name).Msg("cache entry kept in memory only")
	default:
		t.setState(ctx, cache.StateInvalid)
		return fmt.Errorf("update cache of %s: %w", t.name, err)
	}

	t.setState(ctx, cache.StateValid)
	return nil
}

// Snapshot implements TableSyncer.
func (t *Table) Snapshot() *models.Snapshot {
	if t.state != cache.StateValid || !t.entry.IsComplete() {
		return nil
	}
	s := t.entry.Snapshot
	idx := make([]int, s.Len())
	for i := range idx {
		idx[i] = i
	}
	return s.Select(idx)
}

// Status implements TableSyncer.
func (t *Table) Status() TableStatus {
	st := TableStatus{Table: t.name, State: t.state}
	if t.schema != nil {
		st.Columns = len(t.schema.Columns)
	}
	if t.entry == nil {
		return st
	}
	st.Rows = t.entry.Snapshot.Len()
	st.Hash = t.entry.Hash
	if t.entry.Metadata != nil {
		lm := t.entry.Metadata.LastModified
		st.LastModified = &lm
		st.RecordCount = t.entry.Metadata.RecordCount
	}
	return st
}

func (t *Table) setState(ctx context.Context, next cache.State) {
	if t.state != next && !t.state.CanTransition(next) {
		logger.FromContextOr(ctx, t.logger).Warn().
			Str("table", t.name).
			Str("from", t.state.String()).
			Str("to", next.String()).
			Msg("unexpected cache state transition")
	}
	t.state = next
}

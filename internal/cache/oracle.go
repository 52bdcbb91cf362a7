// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-table-mirror/internal/logger"
	"github.com/MKhiriev/go-table-mirror/internal/store"
	"github.com/MKhiriev/go-table-mirror/models"
)

var (
	// ErrUpdateFailed is returned when the new hash cannot be computed. The
	// entry keeps its previous contents.
	ErrUpdateFailed = errors.New("cache update failed")
	// ErrPersistFailed is returned when the updated entry could not be
	// written to the store. The in-memory entry is updated; the stored one
	// is not, so the next load re-validates against the remote.
	ErrPersistFailed = errors.New("cache persist failed")
	// ErrNilEntry is returned when Update is called without an entry.
	ErrNilEntry = errors.New("cache entry is nil")
)

// Reason names the check that decided a validation.
type Reason string

const (
	ReasonValid            Reason = "valid"
	ReasonIncomplete       Reason = "incomplete"
	ReasonMetadataMismatch Reason = "metadata_mismatch"
	ReasonRecordCount      Reason = "record_count_mismatch"
	ReasonHashMismatch     Reason = "hash_mismatch"
	ReasonHashError        Reason = "hash_error"
)

// Oracle decides whether a cache entry still agrees with the remote table
// and owns all-or-nothing updates of entries.
type Oracle struct {
	store  store.CacheStore
	hash   Hasher
	logger *logger.Logger
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithHasher replaces the content hash function.
func WithHasher(h Hasher) Option {
	return func(o *Oracle) {
		if h != nil {
			o.hash = h
		}
	}
}

// NewOracle returns an Oracle persisting entries through cacheStore.
func NewOracle(cacheStore store.CacheStore, logger *logger.Logger, opts ...Option) *Oracle {
	o := &Oracle{
		store:  cacheStore,
		hash:   Hash,
		logger: logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Check runs the validity checks in order and returns the first that
// fails, or ReasonValid:
//
//  1. the entry has a snapshot, prior metadata and a stored hash;
//  2. the prior metadata equals remote field for field;
//  3. the snapshot row count equals remote.RecordCount;
//  4. the snapshot hashes to the stored hash.
func (o *Oracle) Check(entry *models.CacheEntry, remote models.RemoteMetadata) Reason {
	if !entry.IsComplete() {
		return ReasonIncomplete
	}
	if !entry.Metadata.Equal(remote) {
		return ReasonMetadataMismatch
	}
	if int64(entry.Snapshot.Len()) != remote.RecordCount {
		return ReasonRecordCount
	}

	digest, err := o.hash(entry.Snapshot)
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "Oracle.Check").Msg("failed to hash cached snapshot")
		return ReasonHashError
	}
	if digest != entry.Hash {
		return ReasonHashMismatch
	}

	return ReasonValid
}

// Validate reports whether entry agrees with remote.
func (o *Oracle) Validate(entry *models.CacheEntry, remote models.RemoteMetadata) bool {
	return o.Check(entry, remote) == ReasonValid
}

// Update replaces the snapshot, metadata and hash of entry. The new hash is
// computed before anything is committed; if that fails all three fields
// keep their previous values and ErrUpdateFailed is returned. Once the
// fields are consistent the entry is saved under table.
func (o *Oracle) Update(ctx context.Context, table string, entry *models.CacheEntry, meta models.RemoteMetadata, snapshot *models.Snapshot) error {
	if entry == nil {
		return ErrNilEntry
	}
	log := logger.FromContext(ctx)

	prev := *entry
	rollback := func() { *entry = prev }

	entry.Snapshot = snapshot
	entry.Metadata = &meta

	digest, err := o.hash(snapshot)
	if err != nil {
		rollback()
		log.Err(err).
			Str("func", "Oracle.Update").
			Str("table", table).
			Msg("failed to hash new snapshot, rolled back")
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	entry.Hash = digest

	if err := o.store.SaveEntry(ctx, table, entry); err != nil {
		log.Err(err).
			Str("func", "Oracle.Update").
			Str("table", table).
			Msg("failed to persist cache entry")
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	log.Debug().
		Str("table", table).
		Int("rows", snapshot.Len()).
		Str("hash", digest).
		Msg("cache entry updated")
	return nil
}

// Load reads the stored entry for table. A complete entry is returned in
// StateValid, pending a Check against fresh remote metadata. A missing or
// malformed entry is not an error: an empty entry in StateEmpty is returned
// so the caller rebuilds it. Only context errors are returned.
func (o *Oracle) Load(ctx context.Context, table string) (*models.CacheEntry, State, error) {
	entry, err := o.store.LoadEntry(ctx, table)
	if err == nil && entry.IsComplete() {
		return entry, StateValid, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, StateEmpty, ctxErr
	}

	log := logger.FromContext(ctx)
	switch {
	case err == nil:
		log.Warn().Str("table", table).Msg("stored cache entry is incomplete")
	case errors.Is(err, store.ErrCacheNotFound):
		log.Info().Str("table", table).Msg("no cache entry stored")
	default:
		log.Warn().Err(err).Str("table", table).Msg("stored cache entry is unusable")
	}

	return &models.CacheEntry{}, StateEmpty, nil
}

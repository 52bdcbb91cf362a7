// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EpochSentinel is the last-modified value reported for an empty table.
var EpochSentinel = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// RemoteMetadata is the cheap change summary of a remote table.
type RemoteMetadata struct {
	LastModified       time.Time `json:"last_modified"`
	RecordCount        int64     `json:"record_count"`
	TotalModifications int64     `json:"total_modifications"`
}

// NewRemoteMetadata applies the defaults used for empty tables: a nil
// last-modified becomes EpochSentinel, nil counters become zero.
func NewRemoteMetadata(lastModified *time.Time, recordCount, totalModifications *int64) RemoteMetadata {
	m := RemoteMetadata{LastModified: EpochSentinel}
	if lastModified != nil {
		m.LastModified = lastModified.UTC()
	}
	if recordCount != nil {
		m.RecordCount = *recordCount
	}
	if totalModifications != nil {
		m.TotalModifications = *totalModifications
	}
	return m
}

// Equal compares all three fields. Timestamps compare as instants.
func (m RemoteMetadata) Equal(other RemoteMetadata) bool {
	return m.LastModified.Equal(other.LastModified) &&
		m.RecordCount == other.RecordCount &&
		m.TotalModifications == other.TotalModifications
}

// CacheEntry is the last snapshot known to agree with the remote table.
type CacheEntry struct {
	Snapshot *Snapshot
	Metadata *RemoteMetadata
	Hash     string
}

// IsComplete reports whether all three parts are present.
func (e *CacheEntry) IsComplete() bool {
	return e != nil && e.Snapshot != nil && e.Metadata != nil && e.Hash != ""
}

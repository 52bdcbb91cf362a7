// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package diff computes the row-level changes needed to make a remote table
// match a desired snapshot.
//
// Rows are joined on their primary-key tuple. A desired row is upserted when
// its key is new or when the Comparer finds a meaningful difference against
// the prior-agreed row; a prior row is deleted when its key disappeared.
//
// The Comparer tolerates representation noise: float rounding within
// rtol 1e-5 / atol 1e-8, null representations, and timestamps that differ
// only in formatting. Integer columns compare exactly. Volatile bookkeeping
// columns (updated_at, created_at) are ignored.
package diff

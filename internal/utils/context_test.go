// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "runID", RunIDCtxKey.String())
	assert.Equal(t, "table", TableCtxKey.String())
}

func TestRunID_RoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	got, ok := GetRunIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "run-1", got)

	_, ok = GetRunIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestTable_RoundTrip(t *testing.T) {
	ctx := WithTable(context.Background(), "orders")
	got, ok := GetTableFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "orders", got)

	// wrong type under the key is not returned
	ctx = context.WithValue(context.Background(), TableCtxKey, 5)
	_, ok = GetTableFromContext(ctx)
	assert.False(t, ok)
}

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14], "expected a version 7 uuid")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators decides whether locally held data can be written to a
// remote table without silent data loss.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values. Supports
//     optional field-level scoping, here the names of columns to check.
//   - ColumnValidator: the column-level type compatibility checks used by
//     the sync coordinator before any remote write.
//
// The compatibility rules are data: a fixed table from declared remote types
// to accepted local representations (see models.Acceptable) plus numeric
// range tables for lossless narrowing.
package validators

import (
	"context"

	"github.com/MKhiriev/go-table-mirror/models"
)

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// ColumnValidator checks local column data against declared remote columns.
type ColumnValidator interface {
	// Classify returns the local representations a declared type accepts.
	// known is false for types that are always accepted.
	Classify(t models.DeclaredType) (accepted []models.LocalType, known bool)

	// IsColumnWritable reports whether values held as local can be written
	// to col without data loss.
	IsColumnWritable(col models.ColumnDescriptor, values []any, local models.LocalType) bool

	// ValidateSemiStructured checks JSON and point content. Other declared
	// types always pass.
	ValidateSemiStructured(col models.ColumnDescriptor, values []any) bool

	// ValidateColumn aggregates every finding for one column.
	ValidateColumn(col models.ColumnDescriptor, values []any, local models.LocalType) models.Issues

	// ValidateSnapshot validates every column of snapshot against schema.
	ValidateSnapshot(schema *models.TableSchema, snapshot *models.Snapshot) models.Issues
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaViolation is matched by SchemaViolationError via errors.Is.
var ErrSchemaViolation = errors.New("schema violation")

// IssueKind classifies a column validation finding.
type IssueKind string

const (
	IssueNullability IssueKind = "nullability"
	IssueUniqueness  IssueKind = "uniqueness"
	IssueType        IssueKind = "type"
	IssueJSON        IssueKind = "json"
	IssuePoint       IssueKind = "point"
	IssueMissing     IssueKind = "missing"
	IssueUnknown     IssueKind = "unknown"
)

// Issue is one column-attributed validation finding.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Column  string    `json:"column"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Column, i.Kind, i.Message)
}

// Issues is a list of findings; empty means valid.
type Issues []Issue

// Columns returns the distinct column names with findings, in order.
func (is Issues) Columns() []string {
	seen := make(map[string]struct{}, len(is))
	var cols []string
	for _, i := range is {
		if _, ok := seen[i.Column]; !ok {
			seen[i.Column] = struct{}{}
			cols = append(cols, i.Column)
		}
	}
	return cols
}

// ByKind returns the findings of one kind.
func (is Issues) ByKind(kind IssueKind) Issues {
	var out Issues
	for _, i := range is {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

func (is Issues) String() string {
	parts := make([]string, len(is))
	for n, i := range is {
		parts[n] = i.String()
	}
	return strings.Join(parts, "; ")
}

// SchemaViolationError is returned when a desired snapshot cannot be written
// to the remote table.
type SchemaViolationError struct {
	Table  string
	Issues Issues
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("%s: table %s: %s", ErrSchemaViolation, e.Table, e.Issues)
}

func (e *SchemaViolationError) Unwrap() error {
	return ErrSchemaViolation
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

const (
	// UpdatedAtColumn must exist on every mirrored table.
	UpdatedAtColumn = "updated_at"
	// CreatedAtColumn is volatile and ignored during row comparison.
	CreatedAtColumn = "created_at"
)

var (
	ErrNoColumns          = errors.New("table has no columns")
	ErrMissingUpdatedAt   = errors.New("table has no updated_at column")
	ErrDuplicateColumn    = errors.New("duplicate column name")
	ErrNoPrimaryKey       = errors.New("table has no primary key")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrNullPrimaryKeyPart = errors.New("primary key value is null")
)

// ColumnDescriptor describes one declared remote column.
type ColumnDescriptor struct {
	Name       string       `json:"name"`
	UDTName    string       `json:"udt_name"`
	Type       DeclaredType `json:"type"`
	Nullable   bool         `json:"nullable"`
	PrimaryKey bool         `json:"primary_key"`
	Unique     bool         `json:"unique"`
	ForeignKey bool         `json:"foreign_key"`
	HasDefault bool         `json:"has_default"`
	Default    *string      `json:"default,omitempty"`
}

// IsUnique reports whether the column takes part in the primary key or a
// single-column UNIQUE constraint. Parts of a composite primary key are
// unique only as a tuple.
func (c ColumnDescriptor) IsUnique() bool {
	return c.PrimaryKey || c.Unique
}

// TableSchema is the ordered, immutable column set of a remote table.
type TableSchema struct {
	Table   string             `json:"table"`
	Columns []ColumnDescriptor `json:"columns"`

	index map[string]int
}

// NewTableSchema validates the column set and builds a TableSchema.
func NewTableSchema(table string, columns []ColumnDescriptor) (*TableSchema, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoColumns, table)
	}

	s := &TableSchema{
		Table:   table,
		Columns: make([]ColumnDescriptor, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(s.Columns, columns)

	for i, c := range s.Columns {
		if _, dup := s.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateColumn, table, c.Name)
		}
		if c.Type == "" {
			s.Columns[i].Type = ParseDeclaredType(c.UDTName)
		}
		s.index[c.Name] = i
	}

	if _, ok := s.index[UpdatedAtColumn]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingUpdatedAt, table)
	}

	return s, nil
}

// Column returns the descriptor for name.
func (s *TableSchema) Column(name string) (ColumnDescriptor, bool) {
	if s.index == nil {
		for _, c := range s.Columns {
			if c.Name == name {
				return c, true
			}
		}
		return ColumnDescriptor{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return ColumnDescriptor{}, false
	}
	return s.Columns[i], true
}

// ColumnNames returns column names in declaration order.
func (s *TableSchema) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		names = append(names, c.Name)
	}
	return names
}

// PrimaryKeys returns primary-key column names in declaration order.
func (s *TableSchema) PrimaryKeys() []string {
	var pks []string
	for _, c := range s.Columns {
		if c.PrimaryKey {
			pks = append(pks, c.Name)
		}
	}
	return pks
}

// UniqueColumns returns primary-key columns together with uniquely
// constrained columns.
func (s *TableSchema) UniqueColumns() []string {
	var cols []string
	for _, c := range s.Columns {
		if c.IsUnique() {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// EmptySnapshot returns a zero-row snapshot typed with the preferred local
// representation of every declared column.
func (s *TableSchema) EmptySnapshot() *Snapshot {
	types := make(map[string]LocalType, len(s.Columns))
	for _, c := range s.Columns {
		lt := Object
		if acc, ok := Acceptable(c.Type); ok && len(acc) > 0 {
			lt = acc[0]
		}
		types[c.Name] = lt
	}
	return &Snapshot{
		Columns: s.ColumnNames(),
		Types:   types,
		Rows:    []Row{},
	}
}

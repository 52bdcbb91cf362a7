package service

import "errors"

var (
	ErrTableNotOpen = errors.New("table is not open")
	ErrUnknownTable = errors.New("table is not mirrored")
	ErrNilSnapshot  = errors.New("no snapshot provided")
	ErrNoTables     = errors.New("no tables to mirror")

	ErrSnapshotUnavailable = errors.New("cached snapshot is not available")
)

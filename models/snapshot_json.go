package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var (
	ErrEmptyDocument   = errors.New("snapshot document is empty")
	ErrInvalidDocument = errors.New("snapshot document must be a JSON object with a rows array")
)

// snapshotDocument is the JSON form of desired table content. Columns may be
// omitted when every row carries every column; an empty table needs them.
type snapshotDocument struct {
	Columns []string `json:"columns,omitempty"`
	Rows    []Row    `json:"rows"`
}

// DecodeSnapshot reads a snapshot document. Numbers are kept as json.Number
// so large integers are not rounded through float64.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc snapshotDocument
	if err = dec.Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if doc.Rows == nil {
		return nil, ErrInvalidDocument
	}

	return NewSnapshot(doc.Columns, doc.Rows), nil
}

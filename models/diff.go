package models

// DiffResult holds the rows to upsert and delete. A side with nothing to do
// is nil so callers can skip the remote call.
type DiffResult struct {
	Upserts *Snapshot
	Deletes *Snapshot
}

func (d DiffResult) HasUpserts() bool {
	return d.Upserts.Len() > 0
}

func (d DiffResult) HasDeletes() bool {
	return d.Deletes.Len() > 0
}

// HasChanges reports whether any remote write is needed.
func (d DiffResult) HasChanges() bool {
	return d.HasUpserts() || d.HasDeletes()
}

package store

import "errors"

// Sentinel errors returned by stores and the remote catalog. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrCacheNotFound is returned when no complete cache entry or schema is
	// stored for a table.
	ErrCacheNotFound = errors.New("cache entry not found")

	// ErrCacheCorrupted is returned when stored cache data cannot be decoded.
	ErrCacheCorrupted = errors.New("cache entry is corrupted")

	// ErrTableNotFound is returned when the remote table does not exist or
	// has no visible columns.
	ErrTableNotFound = errors.New("remote table not found")

	// ErrRemoteUnavailable is returned when the remote database cannot be
	// reached or reports a transient failure.
	ErrRemoteUnavailable = errors.New("remote database unavailable")

	// ErrInvalidTableName is returned for names that cannot be used as a
	// cache key (empty, or containing path elements).
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrNilEntry is returned when SaveEntry is called without a complete
	// entry.
	ErrNilEntry = errors.New("cache entry is incomplete")
)

// Low-level database operation errors. These are returned (or wrapped) by
// store methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

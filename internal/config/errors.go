package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates missing tables, a bad parallelism value
	// or an unknown timezone.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidRemoteConfigs indicates a missing REST URL or non-positive
	// paging/timeout settings.
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidStorageConfigs indicates an empty database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCacheConfigs indicates an unknown cache backend or a backend
	// without its location.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidWorkerConfigs indicates a negative sync interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
	_ "time/tzdata"
)

// StructuredConfig is the top-level configuration of the table mirror. It is
// populated by merging defaults, environment variables, command-line flags
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds run-level settings: which tables to mirror and how.
	App App `envPrefix:"APP_"`

	// Remote holds the REST endpoint used for bulk reads and writes.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds the direct database connection used for metadata and
	// schema introspection.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache selects and configures the local cache backend.
	Cache Cache `envPrefix:"CACHE_"`

	// Workers holds configuration for the periodic refresh job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Metrics holds the optional prometheus listener address.
	Metrics Metrics `envPrefix:"METRICS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds run-level settings.
type App struct {
	// Tables lists the remote tables to keep mirrored.
	// Env: APP_TABLES (comma separated)
	Tables []string `env:"TABLES" envSeparator:","`

	// Timezone is the IANA zone time values are rendered in before upload.
	// Env: APP_TIMEZONE
	Timezone string `env:"TIMEZONE"`

	// ForceAnalyze runs ANALYZE after a write so that row statistics are
	// current before they are cached.
	// Env: APP_FORCE_ANALYZE
	ForceAnalyze bool `env:"FORCE_ANALYZE"`

	// Parallelism bounds how many tables are refreshed at once.
	// Env: APP_PARALLELISM
	Parallelism int `env:"PARALLELISM"`

	// LogFile switches logging to a rotating file when set.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// PushFile is a JSON document of desired rows mirrored to PushTable
	// once at startup.
	// Env: APP_PUSH_FILE
	PushFile string `env:"PUSH_FILE"`

	// PushTable names the table PushFile is mirrored to; it must be one of
	// Tables.
	// Env: APP_PUSH_TABLE
	PushTable string `env:"PUSH_TABLE"`
}

// Remote holds settings of the PostgREST endpoint.
type Remote struct {
	// RestURL is the base URL of the REST API, e.g.
	// "https://project.supabase.co/rest/v1".
	// Env: REMOTE_REST_URL
	RestURL string `env:"REST_URL"`

	// APIKey is sent as the apikey header and as a bearer token.
	// Env: REMOTE_API_KEY
	APIKey string `env:"API_KEY"`

	// Schema is the database schema the tables live in.
	// Env: REMOTE_SCHEMA
	Schema string `env:"SCHEMA"`

	// PageSize bounds rows per read and per upsert request.
	// Env: REMOTE_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// DeletePageSize bounds primary keys per delete request; filters are
	// sent in the query string so this stays small.
	// Env: REMOTE_DELETE_PAGE_SIZE
	DeletePageSize int `env:"DELETE_PAGE_SIZE"`

	// Timeout is the per-request timeout.
	// Env: REMOTE_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// RetryCount is the number of retries for transport errors, 429 and 5xx.
	// Env: REMOTE_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`

	// RetryWait is the wait between retries.
	// Env: REMOTE_RETRY_WAIT
	RetryWait time.Duration `env:"RETRY_WAIT"`
}

// Storage groups the direct database connection settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the remote PostgreSQL database.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

const (
	CacheBackendFile   = "file"
	CacheBackendSQLite = "sqlite"
)

// Cache configures the local cache store.
type Cache struct {
	// Backend is "file" or "sqlite".
	// Env: CACHE_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the root directory of the file backend; every table gets its
	// own subdirectory.
	// Env: CACHE_DIR
	Dir string `env:"DIR"`

	// DSN is the SQLite database file of the sqlite backend.
	// Env: CACHE_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the refresh period. Zero runs a single refresh.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Metrics holds the settings of the HTTP ops listener.
type Metrics struct {
	// Address is the host:port serving /metrics, /healthz and the table
	// API; empty disables the listener.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// Location resolves App.Timezone, UTC when unset.
func (cfg *StructuredConfig) Location() (*time.Location, error) {
	if cfg.App.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(cfg.App.Timezone)
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (later sources override
// non-zero fields of earlier ones):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

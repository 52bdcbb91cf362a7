// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"time"
)

// validate checks that the merged [StructuredConfig] is usable before
// anything is wired. Each failing group is reported with its own sentinel.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.Tables) == 0 || cfg.App.Parallelism < 0 {
		return ErrInvalidAppConfigs
	}
	for _, t := range cfg.App.Tables {
		if t == "" {
			return fmt.Errorf("%w: empty table name", ErrInvalidAppConfigs)
		}
	}
	if cfg.App.PushFile != "" && !slices.Contains(cfg.App.Tables, cfg.App.PushTable) {
		return fmt.Errorf("%w: push table %q is not mirrored", ErrInvalidAppConfigs, cfg.App.PushTable)
	}
	if cfg.App.Timezone != "" {
		if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
		}
	}

	if cfg.Remote.RestURL == "" || cfg.Remote.PageSize <= 0 || cfg.Remote.DeletePageSize <= 0 ||
		cfg.Remote.Timeout <= 0 || cfg.Remote.RetryCount < 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Cache.Backend {
	case CacheBackendFile:
		if cfg.Cache.Dir == "" {
			return ErrInvalidCacheConfigs
		}
	case CacheBackendSQLite:
		if cfg.Cache.DSN == "" {
			return ErrInvalidCacheConfigs
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidCacheConfigs, cfg.Cache.Backend)
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

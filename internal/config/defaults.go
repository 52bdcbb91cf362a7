package config

import "time"

// Defaults mirror the paging limits of the hosted REST API: reads and
// upserts in pages of 500 rows, deletes in pages of 30 keys.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Timezone:    "America/Los_Angeles",
			Parallelism: 4,
		},
		Remote: Remote{
			Schema:         "public",
			PageSize:       500,
			DeletePageSize: 30,
			Timeout:        30 * time.Second,
			RetryCount:     3,
			RetryWait:      time.Second,
		},
		Cache: Cache{
			Backend: CacheBackendFile,
			Dir:     ".mirror-cache",
		},
	}
}

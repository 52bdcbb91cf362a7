package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Tables       []string `json:"tables"`
		Timezone     string   `json:"timezone"`
		ForceAnalyze bool     `json:"force_analyze"`
		Parallelism  int      `json:"parallelism"`
		LogFile      string   `json:"log_file"`
	} `json:"app,omitempty"`

	Remote struct {
		RestURL        string   `json:"rest_url"`
		APIKey         string   `json:"api_key"`
		Schema         string   `json:"schema"`
		PageSize       int      `json:"page_size"`
		DeletePageSize int      `json:"delete_page_size"`
		Timeout        Duration `json:"timeout"`
		RetryCount     int      `json:"retry_count"`
		RetryWait      Duration `json:"retry_wait"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Cache struct {
		Backend string `json:"backend"`
		Dir     string `json:"dir"`
		DSN     string `json:"dsn"`
	} `json:"cache,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	Metrics struct {
		Address string `json:"address"`
	} `json:"metrics,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Tables:       jsonCfg.App.Tables,
			Timezone:     jsonCfg.App.Timezone,
			ForceAnalyze: jsonCfg.App.ForceAnalyze,
			Parallelism:  jsonCfg.App.Parallelism,
			LogFile:      jsonCfg.App.LogFile,
		},
		Remote: Remote{
			RestURL:        jsonCfg.Remote.RestURL,
			APIKey:         jsonCfg.Remote.APIKey,
			Schema:         jsonCfg.Remote.Schema,
			PageSize:       jsonCfg.Remote.PageSize,
			DeletePageSize: jsonCfg.Remote.DeletePageSize,
			Timeout:        time.Duration(jsonCfg.Remote.Timeout),
			RetryCount:     jsonCfg.Remote.RetryCount,
			RetryWait:      time.Duration(jsonCfg.Remote.RetryWait),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Cache: Cache{
			Backend: jsonCfg.Cache.Backend,
			Dir:     jsonCfg.Cache.Dir,
			DSN:     jsonCfg.Cache.DSN,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		Metrics: Metrics{
			Address: jsonCfg.Metrics.Address,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

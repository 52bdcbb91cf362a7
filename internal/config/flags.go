package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// tableList collects table names from repeated -t flags and comma separated
// values. It implements the flag.Value interface.
type tableList []string

func (l *tableList) String() string {
	return strings.Join(*l, ",")
}

func (l *tableList) Set(s string) error {
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}

// ParseFlags parses configuration flags from args (usually os.Args[1:]).
//
// Flags:
//
//	-t table name, repeatable or comma separated
//	-rest-url REST API base URL
//	-api-key REST API key
//	-schema remote schema name
//	-d database DSN
//	-cache-backend cache backend ("file" or "sqlite")
//	-cache-dir file cache directory
//	-cache-dsn sqlite cache DSN
//	-tz timezone used for uploaded timestamps
//	-force-analyze run ANALYZE after writes
//	-parallelism number of tables refreshed at once
//	-log-file rotating log file path
//	-push JSON file of desired rows mirrored once at startup
//	-push-table table the -push file is mirrored to
//	-interval sync interval (e.g., "5m"); zero runs once
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-metrics-address prometheus listener address in format [host]:[port]
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("mirror", flag.ContinueOnError)

	var tables tableList
	var metricsAddress NetAddress
	var restURL, apiKey, schema string
	var databaseDSN string
	var cacheBackend, cacheDir, cacheDSN string
	var timezone, logFile, jsonConfigPath string
	var pushFile, pushTable string
	var forceAnalyze bool
	var parallelism int
	var syncInterval, requestTimeout time.Duration

	fs.Var(&tables, "t", "Table name (repeatable, comma separated)")
	fs.StringVar(&restURL, "rest-url", "", "REST API base URL")
	fs.StringVar(&apiKey, "api-key", "", "REST API key")
	fs.StringVar(&schema, "schema", "", "Remote schema")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&cacheBackend, "cache-backend", "", "Cache backend: file or sqlite")
	fs.StringVar(&cacheDir, "cache-dir", "", "File cache directory")
	fs.StringVar(&cacheDSN, "cache-dsn", "", "SQLite cache DSN")
	fs.StringVar(&timezone, "tz", "", "Timezone for uploaded timestamps")
	fs.BoolVar(&forceAnalyze, "force-analyze", false, "Run ANALYZE after writes")
	fs.IntVar(&parallelism, "parallelism", 0, "Tables refreshed at once")
	fs.StringVar(&logFile, "log-file", "", "Rotating log file path")
	fs.StringVar(&pushFile, "push", "", "JSON file of desired rows to mirror once")
	fs.StringVar(&pushTable, "push-table", "", "Table the -push file is mirrored to")
	fs.DurationVar(&syncInterval, "interval", 0, "Sync interval (e.g., 5m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Var(&metricsAddress, "metrics-address", "Metrics listener host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Tables:       tables,
			Timezone:     timezone,
			ForceAnalyze: forceAnalyze,
			Parallelism:  parallelism,
			LogFile:      logFile,
			PushFile:     pushFile,
			PushTable:    pushTable,
		},
		Remote: Remote{
			RestURL: restURL,
			APIKey:  apiKey,
			Schema:  schema,
			Timeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Cache: Cache{
			Backend: cacheBackend,
			Dir:     cacheDir,
			DSN:     cacheDSN,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		Metrics: Metrics{
			Address: metricsAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

package config

import "time"

// Storage kinds for the durable credential slot.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Config holds runtime settings for the authkeeper CLI.
//
// Fields:
//   - BaseURL: root of the backend auth API, e.g. "http://localhost:8000/api/auth".
//   - RequestTimeout: per-request HTTP timeout.
//   - StorageKind: how the token slot is persisted (sqlite, file or memory).
//   - StoragePath: sqlite DSN or credentials-file path, depending on kind.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	StorageKind    string
	StoragePath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000/api/auth"
	c.RequestTimeout = 15 * time.Second
	c.StorageKind = StorageSQLite
	c.StoragePath = "authkeeper.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

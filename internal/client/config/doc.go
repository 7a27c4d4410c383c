// Package config loads runtime configuration for the authkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the backend auth API
//	-t int      request timeout (seconds)
//	-s string   credential storage kind: sqlite, file or memory
//	-p string   credential storage path
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8000/api/auth",
//	  "request_timeout": "15s",
//	  "storage_kind": "sqlite",
//	  "storage_path": "authkeeper.db"
//	}
//
// Primary API
//
//   - type Config                     — the runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config

// Package config loads runtime configuration for the Melodica CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-l string   minimum log level (debug, info, warn, error)
//	-p          pretty console log output instead of JSON
//
// # JSON schema
//
//	{
//	  "database_path": "melodica.db",
//	  "log_level": "info",
//	  "log_pretty": false
//	}
//
// This package does not read environment variables; use the JSON file or
// flags to configure values.
package config

// Package config loads runtime configuration for the EduPilot CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables EDUPILOT_*, optionally seeded from a .env file
//     given with -e/-env (or ./.env when present). See parseEnv.
//  3. Optional JSON file selected via -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   SQLite database path
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-o string   export directory
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "http://localhost:8000",
//	  "database_dsn": "edupilot.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "5s",
//	  "notice_ttl": "5s",
//	  "export_dir": "exports",
//	  "log_file": "edupilot.log",
//	  "log_level": "info"
//	}
package config

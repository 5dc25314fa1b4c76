package config

import "time"

// Config holds runtime settings for the EduPilot CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the EduPilot backend (routes live under /api).
//   - DatabaseDSN: SQLite file holding the persisted session.
//   - RequestTimeout: per-request deadline for backend calls.
//   - OnlineCheckInterval: how often the client pings the server.
//   - NoticeTTL: how long an error notice stays on the prompt.
//   - ExportDir: directory for spreadsheet exports.
//   - LogFile / LogLevel: diagnostic log destination and verbosity.
type Config struct {
	ServerBaseURL       string
	DatabaseDSN         string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	NoticeTTL           time.Duration
	ExportDir           string
	LogFile             string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.DatabaseDSN = "edupilot.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.NoticeTTL = 5 * time.Second
	c.ExportDir = "exports"
	c.LogFile = "edupilot.log"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (optionally seeded from a .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/edupilot/edupilot/internal/flagx"
)

// Environment variable names read by parseEnv.
const (
	EnvServerURL           = "EDUPILOT_SERVER_URL"
	EnvDatabaseDSN         = "EDUPILOT_DATABASE_DSN"
	EnvRequestTimeout      = "EDUPILOT_REQUEST_TIMEOUT"
	EnvOnlineCheckInterval = "EDUPILOT_ONLINE_CHECK_INTERVAL"
	EnvNoticeTTL           = "EDUPILOT_NOTICE_TTL"
	EnvExportDir           = "EDUPILOT_EXPORT_DIR"
	EnvLogFile             = "EDUPILOT_LOG_FILE"
	EnvLogLevel            = "EDUPILOT_LOG_LEVEL"
)

// parseEnv loads a dotenv file (the -e/-env flag, else ./.env if present)
// without overriding variables already set in the process, then overlays
// every EDUPILOT_* variable that is set. Durations use Go syntax ("30s");
// unparsable durations keep the previous value.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	setString(&cfg.ServerBaseURL, EnvServerURL)
	setString(&cfg.DatabaseDSN, EnvDatabaseDSN)
	setDuration(&cfg.RequestTimeout, EnvRequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, EnvOnlineCheckInterval)
	setDuration(&cfg.NoticeTTL, EnvNoticeTTL)
	setString(&cfg.ExportDir, EnvExportDir)
	setString(&cfg.LogFile, EnvLogFile)
	setString(&cfg.LogLevel, EnvLogLevel)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}

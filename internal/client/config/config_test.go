package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.ServerBaseURL)
	assert.Equal(t, "edupilot.db", c.DatabaseDSN)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 5*time.Second, c.NoticeTTL)
	assert.Equal(t, "exports", c.ExportDir)
	assert.Equal(t, "edupilot.log", c.LogFile)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"edupilot"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8000", cfg.ServerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv(EnvServerURL, "http://env:8000")
	t.Setenv(EnvLogLevel, "warn")
	os.Args = []string{"edupilot", "-a", "http://flag:9000"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:9000", cfg.ServerBaseURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

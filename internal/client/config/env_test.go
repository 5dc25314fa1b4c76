package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv(EnvServerURL, "http://api.internal:8000")
	t.Setenv(EnvRequestTimeout, "45s")
	t.Setenv(EnvNoticeTTL, "not-a-duration")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://api.internal:8000", cfg.ServerBaseURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.NoticeTTL, "bad duration keeps the default")
	assert.Equal(t, "edupilot.db", cfg.DatabaseDSN)
}

func TestParseEnv_LoadsDotenvFromFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	const key = EnvExportDir
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), "edupilot.env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=/data/exports\n"), 0o600))
	os.Args = []string{"testbin", "-e", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "/data/exports", cfg.ExportDir)
}

func TestParseEnv_MissingDotenvFromFlagPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "missing.env")}

	require.Panics(t, func() { parseEnv(&Config{}) })
}

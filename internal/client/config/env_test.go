package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("BIDSYNC_ACCESS_TOKEN", " tok ")
	t.Setenv("BIDSYNC_REFRESH_TOKEN", "ref")
	t.Setenv("BIDSYNC_VALIDATION_DEBOUNCE", "100ms")
	t.Setenv("BIDSYNC_ONLINE_CHECK_INTERVAL", "not-a-duration")
	t.Setenv("BIDSYNC_DB", "")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "tok", cfg.AccessToken)
	assert.Equal(t, "ref", cfg.RefreshToken)
	assert.Equal(t, 100*time.Millisecond, cfg.ValidationDebounce)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval, "invalid values keep the default")
	assert.Equal(t, "bidsync.db", cfg.DatabaseDSN, "empty values keep the default")
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BIDSYNC_DEVICE_SECRET=from-file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("BIDSYNC_DEVICE_SECRET")
	})

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "from-file", cfg.DeviceSecret)
}

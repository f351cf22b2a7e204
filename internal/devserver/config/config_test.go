package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 24*time.Hour, c.RefreshTokenValidityDuration)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-w", ":9091", "-s", "secret", "-t", "1", "-r", "3", "-u", "ann"},
			expected: &Config{
				EndpointAddrGRPC:             "127.0.0.1:9090",
				EndpointAddrHTTP:             ":9091",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  1 * time.Minute,
				RefreshTokenValidityDuration: 3 * time.Minute,
				DemoUsername:                 "ann",
			},
		},
		{name: "bad minutes", args: []string{"cmd", "-t", "x"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "dev.json")
	b, err := json.Marshal(map[string]any{
		"endpoint_addr_http":             ":7000",
		"access_token_validity_duration": "2m",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"cmd", "-c", path}
	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, ":7000", cfg.EndpointAddrHTTP)
	assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC, "absent fields keep defaults")
}

func TestParseEnv(t *testing.T) {
	t.Setenv("DEVSERVER_JWT_SECRET", "from-env")
	t.Setenv("DEVSERVER_ACCESS_TOKEN_TTL", "30s")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 30*time.Second, cfg.AccessTokenValidityDuration)
}

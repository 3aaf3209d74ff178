package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:8000/ws", cfg.Upstream.URL)
	assert.Equal(t, "127.0.0.1:8090", cfg.Server.ListenAddr)
	assert.Equal(t, 1024, cfg.Feed.LogCapacity)
	assert.Equal(t, 10, cfg.Alerts.Capacity)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	content := `
upstream:
  url: wss://orchestrator.internal/ws
feed:
  logCapacity: 256
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "wss://orchestrator.internal/ws", cfg.Upstream.URL)
	assert.Equal(t, 256, cfg.Feed.LogCapacity)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, "127.0.0.1:8090", cfg.Server.ListenAddr)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("CONSOLE_UPSTREAM_URL", "ws://override:9000/ws")
	t.Setenv("CONSOLE_EVENT_LOG_CAPACITY", "64")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ws://override:9000/ws", cfg.Upstream.URL)
	assert.Equal(t, 64, cfg.Feed.LogCapacity)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty upstream url", func(c *Config) { c.Upstream.URL = "" }},
		{"non-websocket url", func(c *Config) { c.Upstream.URL = "http://localhost:8000" }},
		{"empty listen addr", func(c *Config) { c.Server.ListenAddr = "" }},
		{"zero log capacity", func(c *Config) { c.Feed.LogCapacity = 0 }},
		{"zero alert capacity", func(c *Config) { c.Alerts.Capacity = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("upstream: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

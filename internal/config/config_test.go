package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("API_URL", "")
	t.Setenv("REWRITE_TIMEOUT", "")
	t.Setenv("FREE_USAGE_LIMIT", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("BACKEND_HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "8081", cfg.BackendPort)
	assert.NotEqual(t, cfg.HTTPPort, cfg.BackendPort)
	assert.Equal(t, DefaultUpstreamURL, cfg.Upstream.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 3, cfg.Client.FreeUsageLimit)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "remagik.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_port: "9000"
backend_port: "9001"
upstream:
  base_url: http://from-file
client:
  free_usage_limit: 5
llm:
  provider: openai
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_URL", "http://from-env")
	t.Setenv("REWRITE_TIMEOUT", "5")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("BACKEND_HTTP_PORT", "")
	t.Setenv("FREE_USAGE_LIMIT", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "9001", cfg.BackendPort)
	assert.Equal(t, "http://from-env", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 5, cfg.Client.FreeUsageLimit)
	assert.Equal(t, "openai", cfg.LLM.Provider)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.wigle.net", cfg.BaseURL)
	assert.Equal(t, "network", cfg.Search.Kind)
	assert.Equal(t, 100, cfg.Search.PageSize)
	assert.Equal(t, 3, cfg.Search.MaxAttempts)
	assert.Equal(t, []time.Duration{5 * time.Second, 30 * time.Second}, cfg.Search.Backoff)
	assert.Equal(t, 2*time.Minute, cfg.Search.MaxCooldown)
	assert.Equal(t, 5*time.Second, cfg.Search.RequestInterval)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.APIToken)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
api_token: dGVzdA==
base_url: https://wigle.test
search:
  kind: bluetooth
  page_size: 25
  max_attempts: 2
  backoff: [1s, 2s]
output:
  dir: /tmp/results
  format: xlsx
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dGVzdA==", cfg.APIToken)
	assert.Equal(t, "https://wigle.test", cfg.BaseURL)
	assert.Equal(t, "bluetooth", cfg.Search.Kind)
	assert.Equal(t, 25, cfg.Search.PageSize)
	assert.Equal(t, 2, cfg.Search.MaxAttempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, cfg.Search.Backoff)
	assert.Equal(t, "/tmp/results", cfg.Output.Dir)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)

	t.Setenv("WIGLE_API_TOKEN", "ZW52dG9r")
	t.Setenv("WIGLE_OUTPUT_DIR", "/tmp/env-results")
	t.Setenv("WIGLE_SEARCH_KIND", "cell")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ZW52dG9r", cfg.APIToken)
	assert.Equal(t, "/tmp/env-results", cfg.Output.Dir)
	assert.Equal(t, "cell", cfg.Search.Kind)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}

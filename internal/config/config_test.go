package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "serial", cfg.Dispatch.Mode)
	assert.Equal(t, 256, cfg.Dispatch.QueueSize)
	assert.Equal(t, 1024, cfg.SeenCacheSize)
	assert.Equal(t, "./data", cfg.Database.Dir)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
log_level: warn
seen_cache_size: 64

dispatch:
  mode: pool
  queue_size: 32
  workers: 2

database:
  dir: /tmp/chain
  in_memory: false

metrics:
  enabled: true
  listen_addr: ":9100"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 64, cfg.SeenCacheSize)
	assert.Equal(t, DispatchConfig{Mode: "pool", QueueSize: 32, Workers: 2}, cfg.Dispatch)
	assert.Equal(t, "/tmp/chain", cfg.Database.Dir)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
}

func TestLoadRejectsBadDispatchMode(t *testing.T) {
	path := writeConfig(t, "dispatch:\n  mode: fibers\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatch.mode")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Dispatch.Mode = "pool"
	cfg.Dispatch.Workers = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.SeenCacheSize = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.Dir = ""
	assert.Error(t, cfg.Validate())
	cfg.Database.InMemory = true
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

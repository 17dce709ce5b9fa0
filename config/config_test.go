package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BANDGAP_API_URL", "BANDGAP_API_TIMEOUT", "BANDGAP_STORAGE_DRIVER",
		"BANDGAP_STORAGE_DSN", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, uint64(3), cfg.API.Retries)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "bandgap.db", cfg.Storage.DSN)
	assert.Equal(t, "predictionHistory", cfg.Storage.Key)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
api:
  base_url: "http://predictor:9000"
  timeout_seconds: 5
  rate_per_sec: 2
storage:
  driver: "bolt"
  dsn: "/tmp/h.bolt"
log:
  level: "warn"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("BANDGAP_STORAGE_DRIVER", "memory")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://predictor:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 1, cfg.API.RateBurst, "burst mínimo cuando hay rate limit")
	assert.Equal(t, "memory", cfg.Storage.Driver, "env gana sobre YAML")
	assert.Equal(t, "/tmp/h.bolt", cfg.Storage.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears keys for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

var settingKeys = []string{
	"PORT", "ENV", "JWT_SECRET", "JWT_ACCESS_EXPIRY", "JWT_REFRESH_EXPIRY",
	"REDIS_ADDR", "REDIS_DB", "IMPORT_BATCH_SIZE", "SNAPSHOT_TTL", "CONFIG_FILE", "PHOTO_MAX_BYTES",
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, settingKeys...)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, 20, cfg.ImportBatchSize)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_PhotoMaxBytes(t *testing.T) {
	unset(t, settingKeys...)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PHOTO_MAX_BYTES", "2048")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, int64(2048), cfg.Storage.MaxBytes)
}

func TestLoad_MissingSecret(t *testing.T) {
	unset(t, settingKeys...)

	_, err := Load()

	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitetrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  env: production
jwt:
  secret: from-file
  access_expiry: 5m
redis:
  addr: cache:6379
  db: 2
import:
  batch_size: 50
snapshot_ttl: 1m
`), 0o600))

	unset(t, settingKeys...)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 50, cfg.ImportBatchSize)
	assert.Equal(t, time.Minute, cfg.SnapshotTTL)
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()

	assert.ErrorContains(t, err, "failed to open config file")
}

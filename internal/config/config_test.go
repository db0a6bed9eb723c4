package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arbor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, config.StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
store:
  backend: redis
  redis:
    addr: localhost:6379
    ttl: 24h
flows_path: ./flows
log_level: debug
parallelism: 4
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, config.StoreRedis, cfg.Store.Backend)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "./flows", cfg.FlowsPath)
	assert.Equal(t, 4, cfg.Parallelism)
	// Untouched keys keep their defaults.
	assert.Equal(t, "data", cfg.DataPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"Bad Port", func(c *config.Config) { c.Server.Port = 0 }, "invalid server port"},
		{"Unknown Backend", func(c *config.Config) { c.Store.Backend = "dynamo" }, "unknown store backend"},
		{"Redis Without Addr", func(c *config.Config) { c.Store.Backend = config.StoreRedis }, "requires store.redis.addr"},
		{"Negative Parallelism", func(c *config.Config) { c.Parallelism = -1 }, "parallelism cannot be negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.wantErr)
		})
	}
}

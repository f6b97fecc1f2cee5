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
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "LOG_LEVEL", "LOG_FORMAT", "NATS_URL", "NATS_SUBJECT_PREFIX",
		"AI_PROFILES_FILE", "PLAYER_POOL_FILE", "PLAYER_POOL_URL", "AI_THINK_MIN", "AI_THINK_MAX", "AI_SEED",
		"AUTO_PICK_STRATEGY", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("AI_THINK_MIN", "0s")
	t.Setenv("AI_THINK_MAX", "1s")
	t.Setenv("AI_SEED", "42")
	t.Setenv("AUTO_PICK_STRATEGY", StrategyBestAvailable)
	t.Setenv("PLAYER_POOL_URL", "https://example.com/pool.json")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, time.Duration(0), cfg.AIThinkMin)
	assert.Equal(t, time.Second, cfg.AIThinkMax)
	assert.Equal(t, int64(42), cfg.AISeed)
	assert.Equal(t, StrategyBestAvailable, cfg.AutoPickStrategy)
	assert.Equal(t, "https://example.com/pool.json", cfg.PlayerPoolURL)
}

func TestUnparseableValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_SEED", "abc")
	t.Setenv("AI_THINK_MAX", "soon")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)
	assert.Zero(t, cfg.AISeed)
	assert.Equal(t, 700*time.Millisecond, cfg.AIThinkMax)
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7070"
log_format: json
ai_think_min: 100ms
ai_think_max: 200ms
player_pool_file: players.yaml
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "6060")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "6060", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 100*time.Millisecond, cfg.AIThinkMin)
	assert.Equal(t, 200*time.Millisecond, cfg.AIThinkMax)
	assert.Equal(t, "players.yaml", cfg.PlayerPoolFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"log format", func(c *Config) { c.LogFormat = "xml" }},
		{"think range", func(c *Config) { c.AIThinkMin = time.Second }},
		{"strategy", func(c *Config) { c.AutoPickStrategy = "random" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

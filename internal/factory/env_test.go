package factory

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestConfigFromEnv_DefaultsToMemory(t *testing.T) {
	cfg, err := ConfigFromEnv(envOf(nil), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.StorageType)
	assert.Nil(t, cfg.RedisConfig)
}

func TestConfigFromEnv_Redis(t *testing.T) {
	cfg, err := ConfigFromEnv(envOf(map[string]string{
		EnvStorageType: "redis",
		EnvRedisURL:    "redis://localhost:6379/0",
		EnvPuzzleTTL:   "36h",
		EnvRedisPrefix: "staging",
	}), nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.RedisConfig)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisConfig.URL)
	assert.Equal(t, 36*time.Hour, cfg.RedisConfig.PuzzleTTL)
	assert.Equal(t, "staging", cfg.RedisConfig.KeyPrefix)
}

func TestConfigFromEnv_RedisErrors(t *testing.T) {
	_, err := ConfigFromEnv(envOf(map[string]string{EnvStorageType: "redis"}), nil)
	assert.Error(t, err)

	_, err = ConfigFromEnv(envOf(map[string]string{
		EnvStorageType: "redis",
		EnvRedisURL:    "redis://localhost:6379",
		EnvPuzzleTTL:   "soon",
	}), nil)
	assert.Error(t, err)

	_, err = ConfigFromEnv(envOf(map[string]string{
		EnvStorageType: "redis",
		EnvRedisURL:    "redis://localhost:6379",
		EnvRedisPrefix: "bad:prefix",
	}), nil)
	assert.Error(t, err)
}

func TestPortFromEnv(t *testing.T) {
	port, err := PortFromEnv(envOf(nil), 8080)
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	port, err = PortFromEnv(envOf(map[string]string{EnvPort: "9000"}), 8080)
	require.NoError(t, err)
	assert.Equal(t, 9000, port)

	for _, bad := range []string{"abc", "0", "70000"} {
		_, err = PortFromEnv(envOf(map[string]string{EnvPort: bad}), 8080)
		assert.Error(t, err, bad)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}

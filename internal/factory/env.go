package factory

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	redisstorage "github.com/mcoot/edgepuzzle/internal/storage/redis"
)

// Environment variables read by ConfigFromEnv
const (
	EnvStorageType = "STORAGE_TYPE"
	EnvRedisURL    = "REDIS_URL"
	EnvRedisPrefix = "REDIS_KEY_PREFIX"
	EnvPuzzleTTL   = "PUZZLE_TTL"
	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
)

// ConfigFromEnv builds a factory Config from environment lookups.
// getenv is usually os.Getenv.
func ConfigFromEnv(getenv func(string) string, logger *slog.Logger) (Config, error) {
	cfg := Config{
		Logger:      logger,
		StorageType: getenv(EnvStorageType),
	}

	if cfg.StorageType != StorageTypeRedis {
		return cfg, nil
	}

	redisURL := getenv(EnvRedisURL)
	if redisURL == "" {
		return Config{}, fmt.Errorf("%s required when %s=%s", EnvRedisURL, EnvStorageType, StorageTypeRedis)
	}
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = redisURL

	if ttl := getenv(EnvPuzzleTTL); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvPuzzleTTL, err)
		}
		redisCfg.PuzzleTTL = d
	}
	if prefix := getenv(EnvRedisPrefix); prefix != "" {
		redisCfg.KeyPrefix = prefix
	}
	if err := redisCfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.RedisConfig = &redisCfg
	return cfg, nil
}

// PortFromEnv returns PORT, or def if unset
func PortFromEnv(getenv func(string) string, def int) (int, error) {
	raw := getenv(EnvPort)
	if raw == "" {
		return def, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid %s: %q", EnvPort, raw)
	}
	return port, nil
}

// ParseLogLevel maps debug, info, warn or error to a slog level. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid %s: %q", EnvLogLevel, s)
	}
}

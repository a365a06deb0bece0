package redis

import (
	"errors"
	"strings"
	"time"
)

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// ConnectTimeout bounds the ping made by New
	ConnectTimeout time.Duration

	// KeyPrefix namespaces every key so several deployments can share a database
	KeyPrefix string

	// PuzzleTTL is refreshed on every save; zero keeps puzzles forever
	PuzzleTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		ConnectTimeout: 5 * time.Second,
		KeyPrefix:      "edgepuzzle",
		PuzzleTTL:      7 * 24 * time.Hour,
	}
}

// Validate reports settings that New cannot work with
func (c Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("redis URL is required"))
	}
	if c.KeyPrefix == "" || strings.ContainsAny(c.KeyPrefix, " :") {
		errs = append(errs, errors.New("redis key prefix must be non-empty without spaces or colons"))
	}
	if c.PuzzleTTL < 0 {
		errs = append(errs, errors.New("puzzle TTL must not be negative"))
	}
	return errors.Join(errs...)
}

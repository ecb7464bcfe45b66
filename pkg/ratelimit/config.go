package ratelimit

import (
	"errors"
	"fmt"
	"time"

	"drupal-news/pkg/config"
)

// Defaults for the inbound throttle.
const (
	DefaultRPS             = 5.0
	DefaultBurst           = 20
	DefaultIdleTTL         = 10 * time.Minute
	DefaultMaxKeys         = 10000
	DefaultCleanupInterval = 5 * time.Minute
)

// Config configures a keyed token-bucket limiter.
type Config struct {
	// Enabled turns throttling on. A disabled limiter allows everything.
	Enabled bool

	// RPS is the steady refill rate of each bucket in tokens per second.
	RPS float64

	// Burst is the bucket capacity.
	Burst int

	// IdleTTL is how long an untouched bucket survives cleanup.
	IdleTTL time.Duration

	// MaxKeys bounds the number of tracked buckets. When full, the
	// least recently seen bucket is evicted.
	MaxKeys int

	// CleanupInterval is how often idle buckets are swept.
	CleanupInterval time.Duration
}

// DefaultConfig returns a disabled limiter. Once enabled it allows 5 req/s
// with bursts of 20.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		RPS:             DefaultRPS,
		Burst:           DefaultBurst,
		IdleTTL:         DefaultIdleTTL,
		MaxKeys:         DefaultMaxKeys,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RPS <= 0 {
		return errors.New("rps must be positive")
	}
	if c.Burst < 1 {
		return errors.New("burst must be at least 1")
	}
	if c.MaxKeys < 1 {
		return errors.New("max keys must be at least 1")
	}
	if err := config.ValidatePositiveDuration(c.IdleTTL); err != nil {
		return fmt.Errorf("idle ttl: %w", err)
	}
	if err := config.ValidatePositiveDuration(c.CleanupInterval); err != nil {
		return fmt.Errorf("cleanup interval: %w", err)
	}
	return nil
}

// LoadConfigFromEnv reads RATE_LIMIT_ENABLED, RATE_LIMIT_RPS, RATE_LIMIT_BURST,
// RATE_LIMIT_IDLE_TTL, RATE_LIMIT_MAX_KEYS and RATELIMIT_CLEANUP_INTERVAL.
// Malformed values fall back to their defaults.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Enabled:         config.GetEnvBool("RATE_LIMIT_ENABLED", def.Enabled),
		RPS:             config.GetEnvFloat64("RATE_LIMIT_RPS", def.RPS),
		Burst:           config.GetEnvInt("RATE_LIMIT_BURST", def.Burst),
		IdleTTL:         config.GetEnvDuration("RATE_LIMIT_IDLE_TTL", def.IdleTTL),
		MaxKeys:         config.GetEnvInt("RATE_LIMIT_MAX_KEYS", def.MaxKeys),
		CleanupInterval: config.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", def.CleanupInterval),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("rate limit configuration: %w", err)
	}
	return cfg, nil
}

// Package config loads and validates TOML configuration for the
// qldbpool tool and for applications embedding the session pool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values
const (
	DefaultMaxSessions    = 10
	DefaultRetryAttempts  = 10
	DefaultRetryBaseDelay = 75 * time.Millisecond
	DefaultMetricsListen  = "127.0.0.1:9180"
	DefaultSoakWorkers    = 8
	DefaultSoakDuration   = 30 * time.Second
	DefaultSoakHoldTime   = 20 * time.Millisecond
	DefaultSoakLatency    = 5 * time.Millisecond
)

// Config holds all configuration for qldbpool.
type Config struct {
	Ledger    LedgerConfig    `toml:"ledger"`
	Pool      PoolConfig      `toml:"pool"`
	Retry     RetryConfig     `toml:"retry"`
	Transport TransportConfig `toml:"transport"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Soak      SoakConfig      `toml:"soak"`
}

// LedgerConfig identifies the target ledger.
type LedgerConfig struct {
	// Name is the ledger sessions are opened against
	Name string `toml:"name"`
}

// PoolConfig contains session pool settings.
type PoolConfig struct {
	// MaxSessions caps concurrently live sessions
	MaxSessions int `toml:"max_sessions"`
}

// RetryConfig governs session creation and close attempts.
type RetryConfig struct {
	// MaxAttempts is the total attempt budget per operation
	MaxAttempts int `toml:"max_attempts"`
	// BaseDelay scales the quadratic backoff between attempts
	BaseDelay time.Duration `toml:"base_delay"`
}

// TransportConfig contains optional transport decorators.
type TransportConfig struct {
	// RateLimit throttles StartSession calls per second; 0 disables
	RateLimit float64 `toml:"rate_limit"`
	// RateBurst is the token bucket capacity when rate limiting is on
	RateBurst float64 `toml:"rate_burst"`
	// Breaker enables the circuit breaker decorator
	Breaker bool `toml:"breaker"`
}

// MetricsConfig contains Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served
	Enabled bool `toml:"enabled"`
	// Listen is the address to bind the metrics server to
	Listen string `toml:"listen"`
}

// SoakConfig contains settings for the soak subcommand.
type SoakConfig struct {
	// Workers is the number of concurrent session consumers
	Workers int `toml:"workers"`
	// Duration is how long the soak run lasts
	Duration time.Duration `toml:"duration"`
	// HoldTime is how long each worker keeps a session checked out
	HoldTime time.Duration `toml:"hold_time"`
	// Latency is the simulated per-call transport latency
	Latency time.Duration `toml:"latency"`
	// FailureRate is the simulated StartSession failure probability (0..1)
	FailureRate float64 `toml:"failure_rate"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Name: "my-ledger",
		},
		Pool: PoolConfig{
			MaxSessions: DefaultMaxSessions,
		},
		Retry: RetryConfig{
			MaxAttempts: DefaultRetryAttempts,
			BaseDelay:   DefaultRetryBaseDelay,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Listen:  DefaultMetricsListen,
		},
		Soak: SoakConfig{
			Workers:  DefaultSoakWorkers,
			Duration: DefaultSoakDuration,
			HoldTime: DefaultSoakHoldTime,
			Latency:  DefaultSoakLatency,
		},
	}
}

// LoadConfig reads configuration from a TOML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the configuration to a TOML file.
// It creates the parent directory if it doesn't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Ledger.Name == "" {
		return errors.New("ledger.name is required")
	}
	if c.Pool.MaxSessions < 1 {
		return errors.New("pool.max_sessions must be at least 1")
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be at least 1")
	}
	if c.Retry.BaseDelay < 0 {
		return errors.New("retry.base_delay must not be negative")
	}
	if c.Transport.RateLimit < 0 {
		return errors.New("transport.rate_limit must not be negative")
	}
	if c.Soak.FailureRate < 0 || c.Soak.FailureRate > 1 {
		return errors.New("soak.failure_rate must be between 0 and 1")
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return errors.New("metrics.listen is required when metrics are enabled")
	}
	return nil
}

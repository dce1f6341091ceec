package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Ledger.Name == "" {
		t.Error("default config should have a ledger name")
	}
	if cfg.Pool.MaxSessions != DefaultMaxSessions {
		t.Errorf("default config should have MaxSessions=%d, got %d",
			DefaultMaxSessions, cfg.Pool.MaxSessions)
	}
	if cfg.Retry.MaxAttempts != DefaultRetryAttempts {
		t.Errorf("default config should have MaxAttempts=%d, got %d",
			DefaultRetryAttempts, cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BaseDelay != DefaultRetryBaseDelay {
		t.Errorf("default config should have BaseDelay=%v, got %v",
			DefaultRetryBaseDelay, cfg.Retry.BaseDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty ledger name",
			modify:  func(c *Config) { c.Ledger.Name = "" },
			wantErr: true,
		},
		{
			name:    "zero max sessions",
			modify:  func(c *Config) { c.Pool.MaxSessions = 0 },
			wantErr: true,
		},
		{
			name:    "zero retry attempts",
			modify:  func(c *Config) { c.Retry.MaxAttempts = 0 },
			wantErr: true,
		},
		{
			name:    "negative base delay",
			modify:  func(c *Config) { c.Retry.BaseDelay = -time.Second },
			wantErr: true,
		},
		{
			name:    "negative rate limit",
			modify:  func(c *Config) { c.Transport.RateLimit = -1 },
			wantErr: true,
		},
		{
			name:    "failure rate above one",
			modify:  func(c *Config) { c.Soak.FailureRate = 1.5 },
			wantErr: true,
		},
		{
			name: "metrics enabled without listen address",
			modify: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Listen = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Pool.MaxSessions != DefaultMaxSessions {
		t.Errorf("missing file should yield defaults, got MaxSessions=%d", cfg.Pool.MaxSessions)
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "qldbpool.toml")

	cfg := DefaultConfig()
	cfg.Ledger.Name = "orders"
	cfg.Pool.MaxSessions = 4
	cfg.Transport.RateLimit = 25
	cfg.Transport.RateBurst = 50

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Ledger.Name != "orders" {
		t.Errorf("Ledger.Name = %q, want orders", loaded.Ledger.Name)
	}
	if loaded.Pool.MaxSessions != 4 {
		t.Errorf("Pool.MaxSessions = %d, want 4", loaded.Pool.MaxSessions)
	}
	if loaded.Transport.RateLimit != 25 {
		t.Errorf("Transport.RateLimit = %v, want 25", loaded.Transport.RateLimit)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("ledger = {{"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on malformed TOML")
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qldbpool.toml")
	data := []byte("[pool]\nmax_sessions = 0\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject max_sessions = 0")
	}
}

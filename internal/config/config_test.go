package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:         "8081",
		DataBackend:  "memory",
		SQLiteDBPath: "./data/fintrack.db",
		AMQPExchange: "fintrack",
		AMQPQueue:    "record_changes",
		SnapshotDir:  "./data/snapshots",
		CacheTTL:     30 * time.Second,
		CacheSize:    128,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "must be between 1 and 65535"},
		{"unknown backend", func(c *Config) { c.DataBackend = "redis" }, "invalid data backend"},
		{"sqlite without path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, "path cannot be empty"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "must be 'amqp' or 'amqps'"},
		{"amqp without exchange", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPExchange = "" }, "exchange name cannot be empty"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "queue name cannot be empty"},
		{"valid amqp", func(c *Config) { c.AMQPURL = "amqps://broker:5671" }, ""},
		{"cache ttl too small", func(c *Config) { c.CacheTTL = 100 * time.Millisecond }, "must be at least 1 second"},
		{"cache size zero", func(c *Config) { c.CacheSize = 0 }, "must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.DataBackend = "redis"
	cfg.CacheSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"invalid port", "invalid data backend", "invalid cache size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port = %s, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %s, want memory", cfg.DataBackend)
	}
	if cfg.AMQPURL != "" {
		t.Errorf("AMQPURL = %s, want empty", cfg.AMQPURL)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_SIZE", "64")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("DataBackend = %s, want sqlite", cfg.DataBackend)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Errorf("CacheTTL = %v, want 2m", cfg.CacheTTL)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, want 64", cfg.CacheSize)
	}
}

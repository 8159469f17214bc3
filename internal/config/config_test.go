package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := Validate(cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	if cfg.Server.Port != 3089 {
		t.Errorf("default port = %d, want 3089", cfg.Server.Port)
	}
	if cfg.Webhook.CodeLength != 8 {
		t.Errorf("default code length = %d, want 8", cfg.Webhook.CodeLength)
	}
	if cfg.Webhook.TTL() != 7*24*time.Hour {
		t.Errorf("default TTL = %v, want 168h", cfg.Webhook.TTL())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hookline.yaml")

	yaml := `
server:
  port: 4000
store:
  driver: memory
webhook:
  code_length: 12
  expiry_days: 3
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.Webhook.CodeLength != 12 {
		t.Errorf("code length = %d, want 12", cfg.Webhook.CodeLength)
	}
	if cfg.Webhook.TTL() != 3*24*time.Hour {
		t.Errorf("TTL = %v, want 72h", cfg.Webhook.TTL())
	}

	// Unset keys keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOOKLINE_WEBHOOK_CODE_LENGTH", "16")
	t.Setenv("HOOKLINE_STORE_URL", "redis://cache.internal:6379/1")

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Webhook.CodeLength != 16 {
		t.Errorf("code length = %d, want 16 from env", cfg.Webhook.CodeLength)
	}
	if cfg.Store.URL != "redis://cache.internal:6379/1" {
		t.Errorf("store url = %q", cfg.Store.URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, ErrInvalidConfig},
		{"bad driver", func(c *Config) { c.Store.Driver = "postgres" }, ErrInvalidConfig},
		{"redis without url", func(c *Config) { c.Store.URL = "" }, ErrMissingRequired},
		{"zero code length", func(c *Config) { c.Webhook.CodeLength = 0 }, ErrInvalidConfig},
		{"oversized code length", func(c *Config) { c.Webhook.CodeLength = 100 }, ErrInvalidConfig},
		{"zero expiry", func(c *Config) { c.Webhook.ExpiryDays = 0 }, ErrInvalidConfig},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidConfig},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := Validate(cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

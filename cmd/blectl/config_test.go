package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	blehost "github.com/bluekit/ble-host"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Service != blehost.ServiceBluetooth {
		t.Errorf("Expected service %q, got %q", blehost.ServiceBluetooth, cfg.Service)
	}
	if cfg.ResolveTimeout != 10 {
		t.Errorf("Expected resolve timeout 10s, got %d", cfg.ResolveTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level info, got %q", cfg.Log.Level)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Expected 10s duration, got %v", cfg.Timeout())
	}
	if cfg.ScanDuration() != 5*time.Second {
		t.Errorf("Expected 5s scan window, got %v", cfg.ScanDuration())
	}

	if err := cfg.validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blectl.yaml")
	data := []byte("service: bluetooth-secondary\nresolveTimeoutSec: 5\nscanWindowSec: 8\nlog:\n  level: debug\n  file: /tmp/blectl.log\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Service != "bluetooth-secondary" {
		t.Errorf("Expected service bluetooth-secondary, got %q", cfg.Service)
	}
	if cfg.ResolveTimeout != 5 {
		t.Errorf("Expected resolve timeout 5s, got %d", cfg.ResolveTimeout)
	}
	if cfg.ScanWindow != 8 {
		t.Errorf("Expected scan window 8s, got %d", cfg.ScanWindow)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.Log.Level)
	}

	// Unset fields keep their defaults.
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("Expected default max size 10, got %d", cfg.Log.MaxSizeMB)
	}
}

func TestLoadConfigFromNonExistentFile(t *testing.T) {
	if _, err := loadConfig("non-existent-file.yaml"); err == nil {
		t.Error("Expected error when loading non-existent file")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("BLECTL_SERVICE", "bluetooth-aux")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Service != "bluetooth-aux" {
		t.Errorf("Expected env override bluetooth-aux, got %q", cfg.Service)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty service", func(c *Config) { c.Service = "" }},
		{"zero timeout", func(c *Config) { c.ResolveTimeout = 0 }},
		{"huge timeout", func(c *Config) { c.ResolveTimeout = 301 }},
		{"zero scan window", func(c *Config) { c.ScanWindow = 0 }},
		{"huge scan window", func(c *Config) { c.ScanWindow = 121 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	blehost "github.com/bluekit/ble-host"
)

// Config holds the complete blectl configuration
type Config struct {
	Service        string    `yaml:"service"`
	ResolveTimeout int       `yaml:"resolveTimeoutSec"`
	ScanWindow     int       `yaml:"scanWindowSec"`
	Log            LogConfig `yaml:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

func defaultConfig() *Config {
	return &Config{
		Service:        blehost.ServiceBluetooth,
		ResolveTimeout: 10,
		ScanWindow:     5,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// loadConfig loads configuration from path on top of the defaults. An empty
// path falls back to the BLECTL_CONFIG environment variable; with neither
// set, defaults apply as-is.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv("BLECTL_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if svc := os.Getenv("BLECTL_SERVICE"); svc != "" {
		cfg.Service = svc
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Service == "" {
		return fmt.Errorf("service name must not be empty")
	}
	if c.ResolveTimeout <= 0 || c.ResolveTimeout > 300 {
		return fmt.Errorf("resolve timeout %d seconds is outside range [1, 300]", c.ResolveTimeout)
	}
	if c.ScanWindow <= 0 || c.ScanWindow > 120 {
		return fmt.Errorf("scan window %d seconds is outside range [1, 120]", c.ScanWindow)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Timeout returns the resolve timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.ResolveTimeout) * time.Second
}

// ScanDuration returns the scan window as a duration.
func (c *Config) ScanDuration() time.Duration {
	return time.Duration(c.ScanWindow) * time.Second
}

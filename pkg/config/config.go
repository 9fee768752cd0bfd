// Package config handles Wyrd runtime configuration via environment
// variables and an optional YAML file.
//
// Configuration is loaded from WYRD_-prefixed environment variables using
// LoadFromEnv(), or from a YAML file using LoadFromFile(); environment
// variables win when both are present. Validate() checks the result before
// use.
//
// Environment Variables:
//   - WYRD_LOG_LEVEL=debug|info|warn|error
//   - WYRD_LOG_FORMAT=text|json
//   - WYRD_DISABLE_DIRTY_TRACKING=true
//   - WYRD_STORE_DIR=./data
//   - WYRD_STORE_IN_MEMORY=true
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all Wyrd runtime configuration.
type Config struct {
	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`

	// Engine behavior toggles
	Engine EngineConfig `yaml:"engine"`

	// Store settings for the slot store
	Store StoreConfig `yaml:"store"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// EngineConfig holds engine behavior toggles.
type EngineConfig struct {
	// DisableDirtyTracking makes every update execute all nodes
	// unconditionally. Diagnostics only; applies engine-wide.
	DisableDirtyTracking bool `yaml:"disable_dirty_tracking"`
}

// StoreConfig holds slot store settings.
type StoreConfig struct {
	// DataDir is the BadgerDB directory for saved logic buffers.
	DataDir string `yaml:"data_dir"`
	// InMemory runs the store without persistence.
	InMemory bool `yaml:"in_memory"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Store:   StoreConfig{DataDir: "./data"},
	}
}

// LoadFromEnv builds a config from defaults overridden by WYRD_*
// environment variables.
func LoadFromEnv() Config {
	cfg := Default()
	applyEnv(&cfg)
	return cfg
}

// LoadFromFile reads a YAML config file, then applies environment
// overrides on top.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Logging.Level = getEnvString("WYRD_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnvString("WYRD_LOG_FORMAT", cfg.Logging.Format)
	cfg.Engine.DisableDirtyTracking = getEnvBool("WYRD_DISABLE_DIRTY_TRACKING", cfg.Engine.DisableDirtyTracking)
	cfg.Store.DataDir = getEnvString("WYRD_STORE_DIR", cfg.Store.DataDir)
	cfg.Store.InMemory = getEnvBool("WYRD_STORE_IN_MEMORY", cfg.Store.InMemory)
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}
	if !c.Store.InMemory && c.Store.DataDir == "" {
		return fmt.Errorf("store data dir must be set when not in memory")
	}
	return nil
}

// SlogLevel converts the configured level to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a slog.Logger per the logging configuration.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.ToLower(c.Logging.Format) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

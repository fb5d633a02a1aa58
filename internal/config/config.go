// Package config holds the ktp configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all ktp configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Knowledge base configuration
	KB KBConfig `yaml:"kb"`

	// Session configuration
	Session SessionConfig `yaml:"session"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// KBConfig configures where the knowledge base comes from.
type KBConfig struct {
	// Path to an external knowledge base file. Empty means the embedded
	// default is used.
	Path string `yaml:"path"`

	// Watch enables hot reload of an external knowledge base file.
	Watch bool `yaml:"watch"`
}

// SessionConfig configures session behavior.
type SessionConfig struct {
	// SnapshotDir is where debug snapshots are written.
	SnapshotDir string `yaml:"snapshot_dir"`

	// SaveSnapshots enables writing a debug snapshot at the end of an
	// interactive consultation.
	SaveSnapshots bool `yaml:"save_snapshots"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "ktp",
		Version: "1.0.0",

		KB: KBConfig{
			Path:  "",
			Watch: false,
		},

		Session: SessionConfig{
			SnapshotDir:   "debug_states",
			SaveSnapshots: true,
		},

		Logging: LoggingConfig{
			Level: "info",
			File:  "ktp.log",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("KTP_KB"); path != "" {
		c.KB.Path = path
	}
	if level := os.Getenv("KTP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("KTP_SNAPSHOT_DIR"); dir != "" {
		c.Session.SnapshotDir = dir
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	if c.KB.Watch && c.KB.Path == "" {
		return fmt.Errorf("kb.watch requires kb.path to be set")
	}

	return nil
}

// Package config handles jobdeck configuration loading, watching, and
// change notification.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration.
type Config struct {
	Shortcuts ShortcutsConfig `mapstructure:"shortcuts"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ShortcutsConfig configures the shortcut engine.
type ShortcutsConfig struct {
	// StorageKey is the key-value store key the customization blob is
	// persisted under.
	StorageKey string `mapstructure:"storage_key"`

	// SequenceTimeoutMs is the sequence-buffer inactivity window in
	// milliseconds.
	SequenceTimeoutMs int `mapstructure:"sequence_timeout_ms"`
}

// SequenceTimeout returns the configured window as a duration.
func (s ShortcutsConfig) SequenceTimeout() time.Duration {
	return time.Duration(s.SequenceTimeoutMs) * time.Millisecond
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Shortcuts: ShortcutsConfig{
			StorageKey:        "jobdeck.shortcuts",
			SequenceTimeoutMs: 1000,
		},
		Database: DatabaseConfig{
			Path: defaultDatabasePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// GetConfigDir returns the jobdeck configuration directory, honoring
// XDG_CONFIG_HOME.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return filepath.Join(base, "jobdeck"), nil
}

// GetDataDir returns the jobdeck data directory, honoring XDG_DATA_HOME.
func GetDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "jobdeck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "jobdeck"), nil
}

func defaultDatabasePath() string {
	dir, err := GetDataDir()
	if err != nil {
		return "jobdeck.db"
	}
	return filepath.Join(dir, "jobdeck.db")
}

// Package config loads runtime settings from KEXPLORER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/kk-code-lab/kexplorer/internal/prefs"
)

const (
	// EnvPrefix is prepended to every variable name.
	EnvPrefix = "KEXPLORER"
	// LogFileName is the default log file inside the settings directory.
	LogFileName = "kexplorer.log"
)

// Config holds process configuration. Preferences the user edits live in the
// preferences file, not here.
type Config struct {
	SettingsDir string `envconfig:"SETTINGS_DIR"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`
	LogFile  string `envconfig:"LOG_FILE"`

	PreviewSampleBytes int64 `envconfig:"PREVIEW_SAMPLE_BYTES" default:"65536"`
	PreviewMaxBytes    int64 `envconfig:"PREVIEW_MAX_BYTES" default:"4194304"`

	Watch         bool          `envconfig:"WATCH" default:"true"`
	WatchDebounce time.Duration `envconfig:"WATCH_DEBOUNCE" default:"200ms"`
}

// Load reads the environment and fills derived defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.fillDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns Default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		LogLevel:           "info",
		PreviewSampleBytes: 64 * 1024,
		PreviewMaxBytes:    4 * 1024 * 1024,
		Watch:              true,
		WatchDebounce:      200 * time.Millisecond,
	}
	cfg.fillDerived()
	return cfg
}

// Validate rejects values the components cannot work with.
func (c *Config) Validate() error {
	if c.PreviewSampleBytes <= 0 {
		return fmt.Errorf("PREVIEW_SAMPLE_BYTES must be positive, got %d", c.PreviewSampleBytes)
	}
	if c.PreviewMaxBytes <= 0 {
		return fmt.Errorf("PREVIEW_MAX_BYTES must be positive, got %d", c.PreviewMaxBytes)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("WATCH_DEBOUNCE must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

// SettingsFile is the preferences file path.
func (c *Config) SettingsFile() string {
	return filepath.Join(c.SettingsDir, prefs.FileName)
}

func (c *Config) fillDerived() {
	if c.SettingsDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.SettingsDir = filepath.Dir(prefs.DefaultPath(home))
		} else {
			c.SettingsDir = prefs.DirName
		}
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.SettingsDir, LogFileName)
	}
}

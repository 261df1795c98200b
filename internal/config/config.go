// Package config loads the optional YAML configuration for eml2pdf.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/emlkit/eml2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigInvalid  = errors.New("invalid config value")
)

// Render timeout bounds in seconds.
const (
	MinTimeoutSeconds = 1
	MaxTimeoutSeconds = 600
)

// Defaults for render settings.
const (
	DefaultTimeoutSeconds = 60
	DefaultRecycleEvery   = 50
)

// Config holds all configuration for message conversion.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	Naming NamingConfig `yaml:"naming"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = "output" beside each input)
}

// RenderConfig defines browser rendering options.
type RenderConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"` // Per-conversion render timeout (default: 60)
	RecycleEvery   int `yaml:"recycleEvery"`   // Conversions per browser instance (default: 50, 0 = never recycle)
}

// NamingConfig defines derived file name options.
type NamingConfig struct {
	Timezone string `yaml:"timezone"` // IANA zone for timestamps in derived names
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
			RecycleEvery:   DefaultRecycleEvery,
		},
	}
}

// LoadConfig reads and validates a YAML config file. Fields left out of
// the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Called automatically by LoadConfig, but
// available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if c.Render.TimeoutSeconds < MinTimeoutSeconds || c.Render.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("%w: render.timeoutSeconds must be between %d and %d, got %d",
			ErrConfigInvalid, MinTimeoutSeconds, MaxTimeoutSeconds, c.Render.TimeoutSeconds)
	}
	if c.Render.RecycleEvery < 0 {
		return fmt.Errorf("%w: render.recycleEvery must not be negative, got %d",
			ErrConfigInvalid, c.Render.RecycleEvery)
	}
	if c.Naming.Timezone != "" {
		if _, err := time.LoadLocation(c.Naming.Timezone); err != nil {
			return fmt.Errorf("%w: naming.timezone: unknown zone %q",
				ErrConfigInvalid, c.Naming.Timezone)
		}
	}
	return nil
}

// Timeout returns the render timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Render.TimeoutSeconds) * time.Second
}

// Package config resolves runtime settings for the transit CLI from
// .transit.yaml, TRANSIT_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Output formats accepted by the output key.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all runtime configuration for a transit session.
// Values are populated from .transit.yaml, TRANSIT_* env vars, and CLI flags.
type Config struct {
	// SegmentsPath is a TOML segment table; empty uses the embedded table.
	SegmentsPath  string `mapstructure:"segments_path"`
	MaxItems      int    `mapstructure:"max_items"`
	Premium       bool   `mapstructure:"premium"`
	Concurrency   int    `mapstructure:"concurrency"`
	TelemetryPath string `mapstructure:"telemetry_path"`
	Verbose       bool   `mapstructure:"verbose"`
	Output        string `mapstructure:"output"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("segments_path", "")
	viper.SetDefault("max_items", 3)
	viper.SetDefault("premium", true)
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("output", OutputText)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range value in c.
func (c Config) Validate() error {
	switch {
	case c.MaxItems < 0:
		return fmt.Errorf("config: max_items %d: %w", c.MaxItems, ErrInvalid)
	case c.Concurrency < 1:
		return fmt.Errorf("config: concurrency %d: %w", c.Concurrency, ErrInvalid)
	case c.Output != OutputText && c.Output != OutputJSON:
		return fmt.Errorf("config: output %q: %w", c.Output, ErrInvalid)
	}
	return nil
}

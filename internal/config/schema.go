package config

import (
	"fmt"
	"time"
)

// Config is the top-level brpctl configuration.
type Config struct {
	Source   SourceConfig   `mapstructure:"source" yaml:"source"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// SourceConfig holds remote chapter source settings.
type SourceConfig struct {
	APIBase     string `mapstructure:"api_base" yaml:"api_base"`
	Translation string `mapstructure:"translation" yaml:"translation"` // cache file prefix
	Version     string `mapstructure:"version" yaml:"version,omitempty"`
	Timeout     string `mapstructure:"timeout" yaml:"timeout"`
}

// DefaultsConfig holds default values for operations.
type DefaultsConfig struct {
	Profile             string `mapstructure:"profile" yaml:"profile"`
	CacheDir            string `mapstructure:"cache_dir" yaml:"cache_dir"`
	DBPath              string `mapstructure:"db_path" yaml:"db_path"`
	UTCOffset           int    `mapstructure:"utc_offset" yaml:"utc_offset"`
	PrefetchConcurrency int    `mapstructure:"prefetch_concurrency" yaml:"prefetch_concurrency"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "pretty" or "json"
}

// TimeoutDuration parses Timeout, falling back to 30s when it is empty or
// malformed.
func (s SourceConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if c.Defaults.UTCOffset < -12 || c.Defaults.UTCOffset > 14 {
		return fmt.Errorf("defaults.utc_offset %d out of range -12..14", c.Defaults.UTCOffset)
	}
	if c.Defaults.PrefetchConcurrency < 1 {
		return fmt.Errorf("defaults.prefetch_concurrency must be at least 1")
	}
	if c.Defaults.Profile == "" {
		return fmt.Errorf("defaults.profile is empty")
	}
	return nil
}

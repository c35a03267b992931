// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Sink timeout bounds in seconds.
const (
	MinSinkTimeout = 1
	MaxSinkTimeout = 60
)

// JPEG quality bounds.
const (
	MinQuality = 1
	MaxQuality = 100
)

// Config represents the full configuration for sinkdump.
type Config struct {
	// Sink is the memory sink ID to consume. Required for dumping.
	Sink string `yaml:"sink"`

	// SinkTimeout bounds the wait for the upcoming frame, in seconds.
	SinkTimeout int `yaml:"sink_timeout"`

	// Output is the dump destination path. "-" means stdout; empty means
	// the sink is consumed and measured but not persisted.
	Output string `yaml:"output"`

	// JSON formats output as JSON Lines instead of raw bytes.
	// Requires Output.
	JSON bool `yaml:"json"`

	// LogLevel is one of debug, verbose, perf, info.
	LogLevel string `yaml:"log_level"`

	// Encoder selects the compression backend for the generator.
	Encoder string `yaml:"encoder"`

	// Quality is the JPEG quality in [1,100].
	Quality int `yaml:"quality"`

	// Workers is the number of compression workers.
	Workers int `yaml:"workers"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		SinkTimeout: 1,
		LogLevel:    "info",
		Encoder:     "software",
		Quality:     80,
		Workers:     runtime.NumCPU(),
	}
}

// LoadFromFile loads configuration from a YAML file on top of the
// defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks option ranges and cross-option requirements.
func (c Config) Validate() error {
	if c.SinkTimeout < MinSinkTimeout || c.SinkTimeout > MaxSinkTimeout {
		return fmt.Errorf("invalid sink_timeout=%d: min=%d, max=%d",
			c.SinkTimeout, MinSinkTimeout, MaxSinkTimeout)
	}
	if c.Quality < MinQuality || c.Quality > MaxQuality {
		return fmt.Errorf("invalid quality=%d: min=%d, max=%d",
			c.Quality, MinQuality, MaxQuality)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers=%d: min=1", c.Workers)
	}
	if c.JSON && c.Output == "" {
		return fmt.Errorf("json output requires an output destination")
	}
	return nil
}

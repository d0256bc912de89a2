// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, as in ODDEVEN_BUFFER_SIZE.
const Prefix = "ODDEVEN"

var (
	logFormats = []string{"text", "json", "zap"}
	logLevels  = []string{"debug", "info", "warn", "error"}
)

// Config holds all process configuration.
type Config struct {
	CounterPeriod time.Duration `envconfig:"COUNTER_PERIOD" default:"100ms"`
	InjectPeriod  time.Duration `envconfig:"INJECT_PERIOD" default:"1s"`
	BufferSize    int           `envconfig:"BUFFER_SIZE" default:"100"`
	LogFormat     string        `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from environment variables named
// {prefix}_{KEY}. Call Validate once all overrides are applied.
func Load(prefix string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		CounterPeriod: 100 * time.Millisecond,
		InjectPeriod:  time.Second,
		BufferSize:    100,
		LogFormat:     "text",
		LogLevel:      "info",
	}
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.CounterPeriod <= 0 {
		errs = append(errs, fmt.Errorf("counter period must be positive, got %s", c.CounterPeriod))
	}
	if c.InjectPeriod <= 0 {
		errs = append(errs, fmt.Errorf("inject period must be positive, got %s", c.InjectPeriod))
	}
	if c.BufferSize <= 0 {
		errs = append(errs, fmt.Errorf("buffer size must be positive, got %d", c.BufferSize))
	}
	if !oneOf(c.LogFormat, logFormats) {
		errs = append(errs, fmt.Errorf("log format must be one of %s, got %q", strings.Join(logFormats, "|"), c.LogFormat))
	}
	if !oneOf(strings.ToLower(c.LogLevel), logLevels) {
		errs = append(errs, fmt.Errorf("log level must be one of %s, got %q", strings.Join(logLevels, "|"), c.LogLevel))
	}
	return errors.Join(errs...)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

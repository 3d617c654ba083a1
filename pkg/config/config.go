// Package config loads and validates the scryfetch configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

// Config represents the application configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Retry   RetryConfig   `toml:"retry"`
	Logging LoggingConfig `toml:"logging"`
}

// APIConfig holds provider connection settings.
type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
}

// RetryConfig holds retry and timeout settings.
type RetryConfig struct {
	// TimeoutSeconds is the per-attempt request timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// MaxAttempts is the total network attempt budget including the
	// first request.
	MaxAttempts int `toml:"max_attempts"`

	// BackoffBase is the exponent base of the backoff schedule.
	BackoffBase float64 `toml:"backoff_base"`
}

// LoggingConfig holds diagnostic output settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   scryfall.DefaultBaseURL,
			UserAgent: "scryfetch/0.1",
		},
		Retry: RetryConfig{
			TimeoutSeconds: 30,
			MaxAttempts:    5,
			BackoffBase:    2.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load reads the config file at path, layered over the defaults. An empty
// path or a missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Retry.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Validate validates the API configuration.
func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.UserAgent, validation.Required),
	)
}

// Validate validates the retry configuration.
func (c *RetryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
		validation.Field(&c.MaxAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.BackoffBase, validation.Required, validation.Min(1.0)),
	)
}

// Validate validates the logging configuration.
func (c *LoggingConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
	)
}

// Timeout returns the per-attempt timeout as a duration.
func (c *RetryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

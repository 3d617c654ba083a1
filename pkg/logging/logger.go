// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger. Diagnostics always go to a
// side channel (stderr by default) so the primary data output stays clean.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var output io.Writer = cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Front-face retry batches and their outcomes
//   - Individual search pages (page number, card count, has_more)
//   - Names resolved only after the front-face retry
//
// Info: Normal operation events
//   - Batch start (batch index, name count)
//   - Requests that succeeded after one or more retries
//   - Run summaries (cards written, names read)
//
// Warn: Conditions that do not stop the run
//   - Rate-limit pauses (429 with wait duration)
//   - Network failures entering backoff
//   - Newly or still unresolved names per batch, final unresolved total
//   - Malformed input lines skipped
//
// Error: Conditions that abort the run
//   - Retry budget exhaustion
//   - Provider errors (HTTP >=400 other than 429)
//
// Context Fields:
//   - endpoint: API endpoint path
//   - batch: 1-based batch index
//   - attempt / failures: retry accounting
//   - backoff / wait: pause durations
//   - names: affected card names
//   - error_class: client, server, rate_limit, network

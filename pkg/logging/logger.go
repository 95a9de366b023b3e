// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
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

	// File, when set, sends log output to a size-capped rolling file
	// instead of Output. Pretty is ignored for file output.
	File string

	// MaxAgeDays limits how long rotated log files are kept. Zero keeps
	// rotated files forever.
	MaxAgeDays int
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	// Set global log level
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	// Configure output
	var output io.Writer = cfg.Output
	if output == nil {
		output = os.Stderr
	}
	switch {
	case cfg.File != "":
		output = &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  100, // megabytes
			MaxAge:   cfg.MaxAgeDays,
			Compress: true,
		}
	case cfg.Pretty:
		output = zerolog.ConsoleWriter{Out: output}
	}

	// Create logger with timestamp
	logger := zerolog.New(output).With().Timestamp().Logger()

	// Set as global logger
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
//   - Cache operations (hit/miss, fingerprint, TTL)
//   - Fetch flow (cache check, live call, fallback resolution)
//   - Internal state changes
//
// Info: Normal operation events
//   - Successful provider requests
//   - Cache refreshes
//   - Server startup/shutdown
//   - User login/logout
//
// Warn: Warning conditions that don't prevent operation
//   - Degraded results (fallback payload served)
//   - Cache store errors (fall back to live request)
//   - Slow provider responses
//
// Error: Error conditions requiring attention
//   - Provider unreachable across endpoints
//   - Local store failures
//   - Configuration errors
//
// Context Fields:
//   - endpoint: provider endpoint name
//   - fingerprint: cache fingerprint of the request
//   - status_code: HTTP status code
//   - duration: request duration
//   - error_class: error classification (transport, provider, malformed, invalid_request)
//   - cache_hit: boolean indicating cache hit
//   - degraded: boolean indicating a fallback payload was served
//   - ttl: cache entry TTL

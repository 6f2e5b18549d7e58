// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// EnvVarLogLevel is the environment variable consulted when no explicit
// level is given.
const EnvVarLogLevel = "LOG_LEVEL"

// New creates a JSON structured logger at the given level. Source locations
// are included for debug level only.
func New(module, version, level string) *slog.Logger {
	lev := ParseLevel(level)
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	})).With("module", module, "version", version)
}

// SetDefault installs a structured logger as the slog default, deriving the
// level from LOG_LEVEL when level is empty.
func SetDefault(module, version, level string) {
	if level == "" {
		level = os.Getenv(EnvVarLogLevel)
	}
	slog.SetDefault(New(module, version, level))
}

// ParseLevel converts a level name into a slog.Level, defaulting to info
// for unrecognized input.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

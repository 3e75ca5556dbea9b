// Package log configures the process-wide slog logger. Both services log
// JSON to stdout by default; LOG_LEVEL and LOG_FORMAT override the defaults.
package log

import (
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Setup builds a logger that stamps every record with the service name and
// installs it as the slog default.
func Setup(serviceName string, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		// Source locations only matter when someone is actively debugging
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	handler = handler.WithAttrs([]slog.Attr{slog.String("service", serviceName)})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// SetupFromEnv configures logging from LOG_LEVEL and LOG_FORMAT.
func SetupFromEnv(serviceName string) *slog.Logger {
	json := !strings.EqualFold(os.Getenv(EnvLogFormat), "text")
	return Setup(serviceName, levelFromEnv(), json)
}

func levelFromEnv() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv(EnvLogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a JSON (default) or text slog handler as the default logger
// and tags every record with the service name. Unknown formats and levels
// fall back to json and info.
func Init(service, format, level string) *slog.Logger {
	return InitTo(os.Stdout, service, format, level)
}

// InitTo is Init with an explicit destination; CLIs pass os.Stderr so logs
// stay out of their output.
func InitTo(w io.Writer, service, format, level string) *slog.Logger {
	format = strings.ToLower(strings.TrimSpace(format))
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler).With("service", service)
	slog.SetDefault(logger)

	if format != "" && format != "json" && format != "text" {
		logger.Warn("unknown log format, defaulting to json", "format", format)
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

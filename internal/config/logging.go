package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/TheMisteMince/MVP-API/internal"
)

// Creates a logger with the configured level and format.
//
// The format is "text" or "json"; unknown formats fall back to text.
// Unknown levels fall back to info. Attributes are grouped under the
// service name, matching the bootstrap logger installed in main.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler).WithGroup(internal.Name)
}

// Maps a level name to a slog level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Package logging configures the process-wide slog logger and the HTTP
// request log.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/user/deptaihub-go/config"
)

// ParseLevel accepts debug, info, warn (or warning) and error.
// Unknown input falls back to info.
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

// InitLogger builds the logger described by cfg, writing to out, and installs
// it as the slog default. The "text" format is the colored console handler;
// anything else is JSON.
func InitLogger(cfg *config.LogConfig, out io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = NewColorHandler(out, level)
	} else {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level:     level,
			AddSource: level == slog.LevelDebug,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

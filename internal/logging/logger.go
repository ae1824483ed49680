package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	level := ParseLevel(cfg.LogLevel)
	if val := os.Getenv("ICO_LOG_LEVEL"); val != "" {
		level = ParseLevel(val)
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Drop time on the terminal for cleaner output
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}

	if cfg.LogFile != "" {
		// The file sink keeps timestamps
		fileOpts := &slog.HandlerOptions{Level: level}
		return slog.New(slog.NewTextHandler(NewFileWriter(cfg.LogFile), fileOpts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// NewFileWriter returns a size-rotated log file writer
func NewFileWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(val string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(val)) {
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

// Package logging configures the structured logger used throughout reps
package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the default logger.
type Options struct {
	// Output overrides the rotating log file. Used in tests.
	Output   io.Writer
	FilePath string
	Level    string
}

// Setup installs a JSON slog logger writing to a rotating log file as the
// default logger and returns it.
func Setup(opts Options) *slog.Logger {
	w := opts.Output
	if w == nil {
		w = &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: Level(opts.Level),
	})

	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger
}

// Level converts a level name to a slog level. Unknown names map to info.
func Level(level string) slog.Level {
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

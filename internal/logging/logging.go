// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AniruddhGohil/serp-checker/internal/config"
)

// Setup installs the default slog logger described by cfg and returns a
// closer for the rotated log file, if any.
func Setup(cfg *config.Config) io.Closer {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
			LocalTime:  true,
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	logger := slog.New(NewHandler(out, cfg.LogFormat, ParseLevel(cfg.LogLevel)))
	slog.SetDefault(logger)

	return closer
}

// NewHandler builds a text or JSON slog handler.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

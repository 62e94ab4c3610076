// Package logging installs the process-wide slog handler for both the API
// server and the sweeper.
package logging

import (
	"io"
	"log/slog"
)

// Options controls the default handler. Level accepts the spellings
// slog understands ("debug", "info", "warn", "error", case-insensitive);
// anything else falls back to info.
type Options struct {
	Production bool
	Level      string
}

func Setup(out io.Writer, opts Options) {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}

	var handler slog.Handler = slog.NewTextHandler(out, handlerOpts)
	if opts.Production {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))
}

func parseLevel(levelStr string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return slog.LevelInfo
	}
	return level
}

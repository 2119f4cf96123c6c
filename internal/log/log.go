// Package log configures the slog default logger for likertlens.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Level maps the global verbosity flags to a slog level. Quiet wins over
// verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Setup installs a text handler on stderr as the default logger.
func Setup(verbose, quiet bool) {
	SetupWriter(os.Stderr, verbose, quiet)
}

// SetupWriter installs a text handler writing to w as the default logger.
func SetupWriter(w io.Writer, verbose, quiet bool) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level(verbose, quiet)})
	slog.SetDefault(slog.New(handler))
}

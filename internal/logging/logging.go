// Package logging builds the slog logger shared by a run.
package logging

import (
	"io"
	"log/slog"

	"people-sync/internal/config"
)

// New returns a logger writing to w. JSON output is used for config.LogJSON,
// text otherwise. debug lowers the level to Debug.
func New(w io.Writer, format config.LogFormat, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}

	if format == config.LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// FromSettings returns the logger configured by s.
func FromSettings(w io.Writer, s *config.Settings) *slog.Logger {
	return New(w, s.LogFormat, s.DebugMode)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

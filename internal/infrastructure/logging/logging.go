// Package logging provides structured, colorized logging for the game.
//
// Loggers are plain *slog.Logger values built on a tint handler. The level is
// held in a *slog.LevelVar so the engine can switch debug output on and off
// while the game runs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel converts a textual log level into a slog.Level.
// Unknown values map to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

// Options configures New.
type Options struct {
	// Writer receives formatted records. Defaults to os.Stderr.
	Writer io.Writer
	// Level is shared with the caller so the level can change at runtime.
	// A nil Level logs at info.
	Level *slog.LevelVar
	// NoColor disables ANSI colors, e.g. when writing to a file.
	NoColor bool
}

// New constructs a slog.Logger configured with a tint handler.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	var level slog.Leveler = slog.LevelInfo
	if opts.Level != nil {
		level = opts.Level
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor,
	})

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// Toggle flips lv between debug and base. It returns true if debug is now on.
func Toggle(lv *slog.LevelVar, base slog.Level) bool {
	if lv.Level() == slog.LevelDebug && base != slog.LevelDebug {
		lv.Set(base)
		return false
	}
	lv.Set(slog.LevelDebug)
	return true
}

// FileName returns the session log file name for t.
func FileName(t time.Time) string {
	return fmt.Sprintf("game_%s.log", t.Format("2006-01-02_15-04-05"))
}

// OpenFile creates dir if needed and opens a fresh session log file in it.
func OpenFile(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

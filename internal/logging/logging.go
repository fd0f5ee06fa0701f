package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// File receives JSON log lines when set. Takes precedence over Console.
	File string
	// Level is a zerolog level name; empty means info.
	Level string
	// Console writes human-readable lines to Stderr.
	Console bool
	Stderr  io.Writer
}

// New builds the process logger. With neither File nor Console set every event is
// discarded, which is what the TUI wants since it owns the terminal. The returned
// close func is always non-nil.
func New(opts Options) (zerolog.Logger, func() error, error) {
	zerolog.TimeFieldFormat = time.RFC3339
	noop := func() error { return nil }

	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	switch {
	case strings.TrimSpace(opts.File) != "":
		path := filepath.Clean(strings.TrimSpace(opts.File))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("log file: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("log file: %w", err)
		}
		l := zerolog.New(f).With().Timestamp().Logger().Level(lvl)
		return l, f.Close, nil
	case opts.Console:
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: os.Getenv("NO_COLOR") != ""}
		return zerolog.New(cw).With().Timestamp().Logger().Level(lvl), noop, nil
	default:
		return zerolog.Nop(), noop, nil
	}
}

func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q (expected trace|debug|info|warn|error)", s)
	}
	return lvl, nil
}

// Package logging builds the zerolog loggers handed to every command.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

type Options struct {
	Level string
	// JSON switches from the coloured console format to one JSON
	// object per line.
	JSON bool
	// Out defaults to stderr.
	Out io.Writer
	// File, when set, receives every entry in plain console format in
	// addition to Out.
	File io.Writer
}

// ParseLevel accepts zerolog level names in any case. The empty string
// is info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, dynamo.NewConfigError("log_level", "unknown level %q", s)
	}
	return lvl, nil
}

func New(opts Options) (zerolog.Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	if opts.File != nil {
		out = zerolog.MultiLevelWriter(out, zerolog.ConsoleWriter{
			Out:        opts.File,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// ForTUI returns a logger that stays off the terminal while the
// animation owns it: entries go to path, or nowhere when path is empty.
// The returned close function is never nil.
func ForTUI(level, path string) (zerolog.Logger, func() error, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, err
	}
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, err
	}
	w := zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), f.Close, nil
}

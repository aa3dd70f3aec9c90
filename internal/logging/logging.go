// Package logging builds the zerolog loggers used across the application.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/coursebell/internal/config"
)

// New returns the root logger configured per cfg: console-formatted output
// when console is enabled, JSON otherwise, optionally teed into a log
// file. The returned closer owns the file handle; it is a no-op when no
// file is configured.
func New(cfg config.Logging) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var stdout io.Writer = os.Stdout
	if cfg.Console {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	writers := []io.Writer{stdout}
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file %s: %w", cfg.File, err)
		}
		writers = append(writers, f)
		closer = f
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return log, closer, nil
}

// Component returns a child logger tagged with the component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

/*
Package logx provides a structured logging setup based on zerolog.

It builds the process logger handle, configuring the output format (JSON or console)
based on the environment, and optionally fans records out to size-rotated per-level files
under a log directory (error.log, warn.log, info.log, debug.log). The handle is passed
explicitly to the components that need it; request-scoped loggers travel in the context.
*/
package logx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultMaxSizeMB is the size in megabytes at which a log file is rotated.
	DefaultMaxSizeMB = 10

	// DefaultMaxBackups is the number of rotated files kept per level.
	DefaultMaxBackups = 10
)

// fileLevels lists the per-level log files written under the log directory.
// Every file receives records at its own level and above.
var fileLevels = []struct {
	name  string
	level zerolog.Level
}{
	{"error.log", zerolog.ErrorLevel},
	{"warn.log", zerolog.WarnLevel},
	{"info.log", zerolog.InfoLevel},
	{"debug.log", zerolog.DebugLevel},
}

// Options configures the logger returned by New.
type Options struct {
	// Development switches to a colored console writer on stderr instead of JSON on stdout.
	Development bool

	// Level is the minimum level ("debug", "info", "warn", "error"). Empty means info.
	Level string

	// Dir is the log directory. Empty disables file output.
	Dir string

	// MaxSizeMB and MaxBackups tune rotation; zero values use the defaults.
	MaxSizeMB  int
	MaxBackups int

	// Console overrides the console destination. Used by tests.
	Console io.Writer
}

// levelFileWriter forwards records at or above min to the underlying writer and drops the rest.
type levelFileWriter struct {
	min zerolog.Level
	w   io.Writer
}

func (l levelFileWriter) Write(p []byte) (int, error) {
	return l.w.Write(p)
}

func (l levelFileWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < l.min {
		return len(p), nil
	}
	return l.w.Write(p)
}

// closers closes every rotated file it holds.
type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for _, closer := range c {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New builds the process logger. The returned io.Closer releases the log files and must be
// called on shutdown; it is a no-op when file logging is disabled.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var console io.Writer
	switch {
	case opts.Console != nil:
		console = opts.Console
	case opts.Development:
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    false,
			TimeFormat: time.RFC3339,
		}
	default:
		console = os.Stdout
	}

	writers := []io.Writer{console}
	var files closers

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = DefaultMaxSizeMB
		}
		maxBackups := opts.MaxBackups
		if maxBackups <= 0 {
			maxBackups = DefaultMaxBackups
		}

		for _, fl := range fileLevels {
			rotated := &lumberjack.Logger{
				Filename:   filepath.Join(opts.Dir, fl.name),
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
			}
			files = append(files, rotated)
			writers = append(writers, levelFileWriter{min: fl.level, w: rotated})
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, files, nil
}

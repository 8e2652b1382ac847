// Package obslog wraps the library's two public entry points - expansion
// and config loading - with structured logging, following the teacher's
// convention of a thin logger adapter rather than bare log statements
// scattered through the domain code.
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a structured logger scoped to one library entry point.
type Logger struct {
	base zerolog.Logger
}

// Options configures a Logger's output.
type Options struct {
	Writer        io.Writer
	Level         string
	HumanReadable bool
	Component     string
}

// New builds a Logger from Options. An empty Level defaults to "info"; an
// unrecognized Level falls back to "info" rather than erroring, since
// logging configuration should never be fatal to the caller.
func New(opts Options) *Logger {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	var out io.Writer = writer
	if opts.HumanReadable {
		out = zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05"}
	}

	base := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if opts.Component != "" {
		base = base.With().Str("component", opts.Component).Logger()
	}

	return &Logger{base: base}
}

// WithFields returns a derived Logger that always includes the given
// fields, mirroring the teacher's logger.WithFields adapter.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil || len(fields) == 0 {
		return l
	}
	ctx := l.base.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{base: ctx.Logger()}
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Debug writes a debug-level log entry.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Warn writes a warning-level log entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error log entry including the supplied error, if any.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}

// Discard returns a Logger that drops every entry, used as the default
// when a caller does not configure one explicitly.
func Discard() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// Package log carries the structured-logging vocabulary the worker binaries
// share: a component-tagging logger and the field names their records use.
package log

import (
	"context"
	"log/slog"
	"os"
)

// Logger tags every record with the component that emitted it, so one
// binary's interleaved output can be split by subsystem.
type Logger struct {
	sl        *slog.Logger
	component string
}

// New returns a Logger writing text records to stdout at info level.
func New(component string) *Logger {
	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return NewWithHandler(component, h)
}

// NewWithHandler returns a Logger over a caller-supplied handler.
func NewWithHandler(component string, h slog.Handler) *Logger {
	return &Logger{sl: slog.New(h), component: component}
}

func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *Logger) log(level slog.Level, msg string, args []any) {
	l.sl.Log(context.Background(), level, msg,
		append([]any{FieldComponent, l.component}, args...)...)
}

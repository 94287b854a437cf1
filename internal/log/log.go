// Package log carries a logger through a context.Context.
//
// Loggers wrap the standard library logger and write to stderr by default,
// since stdout carries MCP messages in stdio mode. Debug lines are prefixed
// with [DEBUG] and only written when debug output is enabled.
package log

import (
	"context"
	"io"
	stdlog "log"
	"sync/atomic"
)

// Logger is a standard library logger with a debug switch.
type Logger struct {
	*stdlog.Logger
	debug bool
}

// New returns a logger writing to w.
func New(w io.Writer, prefix string, debug bool) *Logger {
	return &Logger{Logger: stdlog.New(w, prefix, stdlog.LstdFlags), debug: debug}
}

// Debugf writes a [DEBUG] line when debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l.debug {
		l.Printf("[DEBUG] "+format, args...)
	}
}

// DebugEnabled reports whether Debugf writes anything.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// With returns a logger that appends prefix to the message prefix of l.
func (l *Logger) With(prefix string) *Logger {
	return &Logger{
		Logger: stdlog.New(l.Writer(), l.Prefix()+prefix, l.Flags()),
		debug:  l.debug,
	}
}

type ctxKey struct{}

var std atomic.Pointer[Logger]

func init() {
	std.Store(&Logger{Logger: stdlog.Default()})
}

// Default returns the process-wide logger.
func Default() *Logger {
	return std.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	std.Store(l)
}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return Default()
}

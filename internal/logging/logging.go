// Package logging holds the process-wide slog logger shared by every
// cogwheel package. It is silent until cogwheel.SetLogger installs a handler.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NewNop creates a logger that discards all output.
func NewNop() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so Set can be
// called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(NewNop())
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Set stores l as the current logger. A nil logger restores silence.
func Set(l *slog.Logger) {
	if l == nil {
		l = NewNop()
	}
	loggerPtr.Store(l)
}

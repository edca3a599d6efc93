package gplot

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called from a goroutine other than the render loop.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for gplot.
// By default, gplot produces no log output. Call SetLogger to enable logging.
// Pass nil to restore the default silent behavior.
//
// Graphics contexts that implement SetLogger(*slog.Logger) receive the
// logger when a line is created on them.
//
// Log levels used by gplot:
//   - [slog.LevelDebug]: buffer provisioning and re-uploads (sizes, counts)
//   - [slog.LevelWarn]: a Draw whose refresh failed and fell back to the previous stream
//
// Example:
//
//	gplot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by gplot.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by graphics contexts that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a context if it implements the
// loggerSetter interface.
func propagateLogger(ctx any, l *slog.Logger) {
	if ls, ok := ctx.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

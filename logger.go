// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativesurface

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can race with logging from the engine worker goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for nativesurface and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: frame skips, event routing, queued engine commands
//   - [slog.LevelInfo]: lifecycle (engine created, surface initialized, shutdown)
//   - [slog.LevelWarn]: destroy of an unknown object, use of a destroyed resource
//
// Example:
//
//	nativesurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
// Sub-packages call this so they share one configuration without
// threading a logger through every constructor.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LoggerFor returns the current logger tagged with a component attribute.
// The result is not cached: a later SetLogger is picked up on the next call.
func LoggerFor(component string) *slog.Logger {
	return Logger().With(slog.String("component", component))
}

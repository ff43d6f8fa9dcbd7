// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host provides the top-level window that holds a render surface.
package host

import (
	"errors"
	"log/slog"

	"github.com/gogpu/nativesurface"
	"github.com/gogpu/nativesurface/rendersurface"
	"github.com/gogpu/nativesurface/toolkit"
)

// ErrAlreadyInitialized is returned by Init when the window already has content.
var ErrAlreadyInitialized = errors.New("host: window already initialized")

// ErrNoContent is returned by Init when given a nil surface.
var ErrNoContent = errors.New("host: nil content")

// Option configures a Window.
type Option func(*Window)

// WithExitKey sets the key that quits the loop. The default is Escape.
func WithExitKey(k toolkit.Key) Option {
	return func(w *Window) {
		w.exitKey = k
	}
}

// WithExitCode sets the code passed to the loop on the exit key.
func WithExitCode(code int) Option {
	return func(w *Window) {
		w.exitCode = code
	}
}

// Window is a top-level window whose only content is a RenderSurface.
type Window struct {
	loop     *toolkit.Loop
	log      *slog.Logger
	exitKey  toolkit.Key
	exitCode int
	content  *rendersurface.RenderSurface
}

// New creates an empty window driven by loop.
func New(loop *toolkit.Loop, opts ...Option) *Window {
	w := &Window{
		loop:    loop,
		log:     nativesurface.LoggerFor("host"),
		exitKey: toolkit.KeyEscape,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Init makes rs the window content. It can be called once.
func (w *Window) Init(rs *rendersurface.RenderSurface) error {
	if rs == nil {
		return ErrNoContent
	}
	if w.content != nil {
		return ErrAlreadyInitialized
	}
	w.content = rs
	return nil
}

// Content returns the render surface, or nil before Init.
func (w *Window) Content() *rendersurface.RenderSurface {
	return w.content
}

// Post queues ev for the window.
func (w *Window) Post(ev toolkit.Event) {
	w.loop.Post(w, ev)
}

// HandleEvent implements toolkit.Receiver.
//
// The exit key stops the loop and a close event shuts the content down.
// Every other event goes to the content.
func (w *Window) HandleEvent(ev toolkit.Event) bool {
	switch e := ev.(type) {
	case toolkit.KeyEvent:
		if e.Key == w.exitKey {
			w.log.Info("exit key pressed", slog.String("key", e.Key.String()))
			w.loop.Exit(w.exitCode)
			return true
		}
	case toolkit.CloseEvent:
		if w.content != nil {
			w.content.Shutdown()
		}
		return true
	}

	if w.content == nil {
		return false
	}
	return w.content.HandleEvent(ev)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package widget implements a toolkit widget that hands its native window
// to a rendering engine.
//
// A Surface owns no rendering state. It decides when the engine may touch
// the window: once, at Init, to build a swap chain; on resize, to update
// camera and viewport; and on a deferred update request, to draw. Paint
// requests are coalesced so any number of paints between two loop
// iterations produce a single draw.
package widget

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/nativesurface"
	"github.com/gogpu/nativesurface/native"
	"github.com/gogpu/nativesurface/toolkit"
)

// ErrNoHandle is returned by Init when the toolkit yields no native window.
var ErrNoHandle = errors.New("widget: no native window handle")

// Native is the toolkit side of a surface.
type Native interface {
	// WinID returns the native window handle, allocating it on first use.
	WinID() native.Handle
	IsVisible() bool
	Size() image.Point
	DevicePixelRatio() float64

	// Post queues an event for this widget on the toolkit loop.
	Post(ev toolkit.Event)
}

// Hooks are the engine-specific steps a Surface drives.
type Hooks interface {
	// InitSurface binds the engine to the window. It runs at most once.
	InitSurface(handle native.Handle) error

	// ResizeSurface reacts to a new geometry. It never runs before a
	// successful InitSurface.
	ResizeSurface()

	// DrawSurface renders one frame. It never runs before a successful
	// InitSurface.
	DrawSurface()
}

// Surface is a widget whose window is drawn by an engine.
type Surface struct {
	native Native
	hooks  Hooks
	log    *slog.Logger

	once        sync.Once
	initErr     error
	initialized atomic.Bool

	// drawPending is only touched on the loop goroutine.
	drawPending bool
}

// New creates a surface over n that calls hooks.
func New(n Native, hooks Hooks) *Surface {
	return &Surface{
		native: n,
		hooks:  hooks,
		log:    nativesurface.LoggerFor("widget"),
	}
}

// Native returns the toolkit widget.
func (s *Surface) Native() Native {
	return s.native
}

// Init acquires the native handle and runs InitSurface.
//
// Init is safe to call any number of times from any goroutine. Only the
// first call does work; the others wait for it and return its result. If
// InitSurface fails the surface stays uninitialized and never draws.
func (s *Surface) Init() error {
	s.once.Do(func() {
		h := s.native.WinID()
		if h.IsNull() {
			s.initErr = ErrNoHandle
			return
		}
		if err := s.hooks.InitSurface(h); err != nil {
			s.initErr = fmt.Errorf("widget: init surface %v: %w", h, err)
			s.log.Error("surface init failed", slog.Any("error", err))
			return
		}
		s.initialized.Store(true)
		s.log.Info("surface initialized", slog.String("window", h.String()))
	})
	return s.initErr
}

// Initialized reports whether InitSurface completed successfully.
func (s *Surface) Initialized() bool {
	return s.initialized.Load()
}

// DrawPending reports whether an update request is queued.
func (s *Surface) DrawPending() bool {
	return s.drawPending
}

// RequestDraw schedules a draw on a later loop iteration. Requests made
// while one is pending are merged into it.
func (s *Surface) RequestDraw() {
	if s.drawPending {
		return
	}
	s.drawPending = true
	s.native.Post(toolkit.UpdateRequestEvent{})
}

// HandleEvent implements toolkit.Receiver.
func (s *Surface) HandleEvent(ev toolkit.Event) bool {
	switch e := ev.(type) {
	case toolkit.PaintEvent:
		s.RequestDraw()
		return true
	case toolkit.UpdateRequestEvent:
		s.update()
		return true
	case toolkit.ResizeEvent:
		s.resize(e)
		return true
	default:
		return false
	}
}

// update runs a pending draw. The pending flag is cleared after the hook,
// so a draw requested from inside DrawSurface merges into this one.
func (s *Surface) update() {
	defer func() { s.drawPending = false }()
	if !s.initialized.Load() {
		s.log.Debug("draw before init ignored")
		return
	}
	if !s.native.IsVisible() {
		return
	}
	s.hooks.DrawSurface()
}

func (s *Surface) resize(e toolkit.ResizeEvent) {
	if e.Size.X < 0 || e.Size.Y < 0 {
		s.log.Debug("invalid resize ignored", slog.Any("size", e.Size))
		return
	}
	if !s.initialized.Load() {
		return
	}
	s.hooks.ResizeSurface()

	// Toolkits do not repaint a window that only got smaller.
	if e.Shrunk() {
		s.RequestDraw()
	}
}

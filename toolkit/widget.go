// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package toolkit

import (
	"image"
	"sync"

	"github.com/gogpu/nativesurface/native"
)

// WidgetOption configures a Widget.
type WidgetOption func(*Widget)

// WithSize sets the initial logical size.
func WithSize(width, height int) WidgetOption {
	return func(w *Widget) {
		w.size = image.Pt(max(width, 0), max(height, 0))
	}
}

// WithDevicePixelRatio sets the physical pixels per logical pixel.
func WithDevicePixelRatio(ratio float64) WidgetOption {
	return func(w *Widget) {
		if ratio > 0 {
			w.dpr = ratio
		}
	}
}

// WithRegistry allocates the native handle in r instead of the global registry.
func WithRegistry(r *native.Registry) WidgetOption {
	return func(w *Widget) {
		w.registry = r
	}
}

// Widget is a native child window managed by a Loop.
//
// Events posted to a Widget are forwarded to its handler, usually the
// surface drawing into it. Geometry and visibility are owned by the toolkit;
// the handler only observes them.
type Widget struct {
	loop     *Loop
	registry *native.Registry

	mu          sync.Mutex
	handle      native.Handle
	allocations int
	handler     Receiver
	size        image.Point
	dpr         float64
	visible     bool
}

// NewWidget creates a hidden widget bound to loop.
func NewWidget(loop *Loop, opts ...WidgetOption) *Widget {
	w := &Widget{loop: loop, dpr: 1}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SetHandler sets the receiver for the widget's events.
func (w *Widget) SetHandler(r Receiver) {
	w.mu.Lock()
	w.handler = r
	w.mu.Unlock()
}

// HandleEvent implements Receiver by forwarding to the handler.
func (w *Widget) HandleEvent(ev Event) bool {
	w.mu.Lock()
	h := w.handler
	w.mu.Unlock()

	if h == nil {
		return false
	}
	return h.HandleEvent(ev)
}

// WinID returns the native window handle, allocating it on first use.
// The same handle is returned for the lifetime of the widget.
func (w *Widget) WinID() native.Handle {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.handle.IsNull() {
		if w.registry != nil {
			w.handle = w.registry.Allocate()
		} else {
			w.handle = native.Allocate()
		}
		w.allocations++
	}
	return w.handle
}

// HandleAllocations returns how many native handles the widget allocated.
func (w *Widget) HandleAllocations() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.allocations
}

// IsVisible reports whether the widget is shown.
func (w *Widget) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Size returns the logical size.
func (w *Widget) Size() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// DevicePixelRatio returns the physical pixels per logical pixel.
func (w *Widget) DevicePixelRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dpr
}

// SetDevicePixelRatio updates the ratio, for example after the window
// moved to another monitor.
func (w *Widget) SetDevicePixelRatio(ratio float64) {
	if ratio <= 0 {
		return
	}
	w.mu.Lock()
	w.dpr = ratio
	w.mu.Unlock()
}

// Post queues ev for this widget.
func (w *Widget) Post(ev Event) {
	w.loop.Post(w, ev)
}

// Resize changes the logical size and delivers a ResizeEvent synchronously.
// Negative components are reported in the event but stored as zero.
// A visible widget that grew gets a PaintEvent queued.
func (w *Widget) Resize(size image.Point) {
	w.mu.Lock()
	old := w.size
	w.size = image.Pt(max(size.X, 0), max(size.Y, 0))
	visible := w.visible
	w.mu.Unlock()

	if size == old {
		return
	}
	ev := ResizeEvent{Size: size, OldSize: old}
	w.loop.Send(w, ev)
	if visible && ev.Grew() {
		w.Post(PaintEvent{})
	}
}

// Show makes the widget visible and schedules a paint.
func (w *Widget) Show() {
	w.mu.Lock()
	was := w.visible
	w.visible = true
	w.mu.Unlock()

	if was {
		return
	}
	w.loop.Send(w, ShowEvent{})
	w.Post(PaintEvent{})
}

// Hide makes the widget invisible.
func (w *Widget) Hide() {
	w.mu.Lock()
	was := w.visible
	w.visible = false
	w.mu.Unlock()

	if was {
		w.loop.Send(w, HideEvent{})
	}
}

// Update schedules a paint.
func (w *Widget) Update() {
	w.Post(PaintEvent{})
}

// Close releases the native handle. The widget must not be used afterwards.
func (w *Widget) Close() {
	w.mu.Lock()
	h := w.handle
	w.handle = native.NullHandle
	w.visible = false
	w.mu.Unlock()

	if h.IsNull() {
		return
	}
	if w.registry != nil {
		w.registry.Release(h)
	} else {
		native.Release(h)
	}
}

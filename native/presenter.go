// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// Presenter receives finished frames for one native window.
//
// Present may be called from the engine's worker goroutine, so
// implementations must be safe for concurrent use with the toolkit thread.
type Presenter interface {
	// Ready reports whether the window can accept a frame right now.
	// An engine skips the frame when this returns false.
	Ready() bool

	// Present delivers a finished frame. The presenter owns frame afterwards.
	Present(frame *image.RGBA) error
}

// ImagePresenter is an in-memory Presenter that keeps the most recent frame.
//
// When the presenter has a fixed size, frames of a different size are scaled
// to it with bilinear filtering; this is how a high-DPI frame lands in a
// logical-size window. A zero size keeps frames as delivered.
type ImagePresenter struct {
	mu     sync.Mutex
	size   image.Point
	frame  *image.RGBA
	count  int
	paused bool
}

// NewImagePresenter creates a presenter that scales frames to width x height.
// Pass zero dimensions to keep frames at their native size.
func NewImagePresenter(width, height int) *ImagePresenter {
	return &ImagePresenter{size: image.Pt(max(width, 0), max(height, 0))}
}

// Ready implements Presenter.
func (p *ImagePresenter) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.paused
}

// SetPaused makes Ready report false, simulating a window that is
// temporarily unable to take frames (minimized, surface lost).
func (p *ImagePresenter) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
}

// Resize changes the output size for subsequent frames.
func (p *ImagePresenter) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.size = image.Pt(max(width, 0), max(height, 0))
}

// Present implements Presenter.
func (p *ImagePresenter) Present(frame *image.RGBA) error {
	if frame == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.size.X > 0 && p.size.Y > 0 && frame.Bounds().Size() != p.size {
		dst := image.NewRGBA(image.Rectangle{Max: p.size})
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), frame, frame.Bounds(), draw.Src, nil)
		frame = dst
	}
	p.frame = frame
	p.count++
	return nil
}

// Frame returns the most recently presented frame, or nil.
func (p *ImagePresenter) Frame() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// Frames returns how many frames were presented.
func (p *ImagePresenter) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

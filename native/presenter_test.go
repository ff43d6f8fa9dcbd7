// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"image"
	"image/color"
	"testing"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestImagePresenterKeepsNativeSize(t *testing.T) {
	p := NewImagePresenter(0, 0)
	frame := solidFrame(8, 4, color.RGBA{R: 255, A: 255})

	if err := p.Present(frame); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if p.Frame() != frame {
		t.Error("Frame() should return the delivered frame unchanged")
	}
	if p.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", p.Frames())
	}
}

func TestImagePresenterScales(t *testing.T) {
	p := NewImagePresenter(4, 2)
	blue := color.RGBA{B: 255, A: 255}

	if err := p.Present(solidFrame(8, 4, blue)); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	got := p.Frame()
	if got.Bounds().Size() != image.Pt(4, 2) {
		t.Fatalf("frame size = %v, want 4x2", got.Bounds().Size())
	}
	if c := got.RGBAAt(1, 1); c != blue {
		t.Errorf("scaled pixel = %v, want %v", c, blue)
	}
}

func TestImagePresenterPaused(t *testing.T) {
	p := NewImagePresenter(0, 0)
	if !p.Ready() {
		t.Fatal("new presenter should be ready")
	}
	p.SetPaused(true)
	if p.Ready() {
		t.Error("paused presenter should not be ready")
	}
	p.SetPaused(false)
	if !p.Ready() {
		t.Error("resumed presenter should be ready")
	}
}

func TestImagePresenterNilFrame(t *testing.T) {
	p := NewImagePresenter(2, 2)
	if err := p.Present(nil); err != nil {
		t.Errorf("Present(nil) error = %v", err)
	}
	if p.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", p.Frames())
	}
}

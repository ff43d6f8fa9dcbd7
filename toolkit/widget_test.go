// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package toolkit

import (
	"image"
	"sync"
	"testing"

	"github.com/gogpu/nativesurface/native"
)

func TestWidgetWinIDAllocatesOnce(t *testing.T) {
	reg := native.NewRegistry()
	w := NewWidget(NewLoop(0), WithRegistry(reg))

	var wg sync.WaitGroup
	ids := make([]native.Handle, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = w.WinID()
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		if id != ids[0] || id.IsNull() {
			t.Fatalf("WinID returned %v and %v", ids[0], id)
		}
	}
	if got := w.HandleAllocations(); got != 1 {
		t.Errorf("HandleAllocations = %d, want 1", got)
	}
	if _, err := reg.Lookup(ids[0]); err != nil {
		t.Errorf("handle not registered: %v", err)
	}

	w.Close()
	if _, err := reg.Lookup(ids[0]); err == nil {
		t.Error("Close did not release the handle")
	}
}

func TestWidgetResize(t *testing.T) {
	tests := []struct {
		name      string
		visible   bool
		from, to  image.Point
		wantSize  image.Point
		wantEvent bool
		wantPaint bool
	}{
		{"grow visible", true, image.Pt(100, 100), image.Pt(200, 100), image.Pt(200, 100), true, true},
		{"grow hidden", false, image.Pt(100, 100), image.Pt(200, 100), image.Pt(200, 100), true, false},
		{"shrink", true, image.Pt(100, 100), image.Pt(50, 100), image.Pt(50, 100), true, false},
		{"same", true, image.Pt(100, 100), image.Pt(100, 100), image.Pt(100, 100), false, false},
		{"negative", true, image.Pt(100, 100), image.Pt(-5, 100), image.Pt(0, 100), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoop(0)
			w := NewWidget(l, WithSize(tt.from.X, tt.from.Y))
			var resizes []ResizeEvent
			paints := 0
			w.SetHandler(ReceiverFunc(func(ev Event) bool {
				switch e := ev.(type) {
				case ResizeEvent:
					resizes = append(resizes, e)
				case PaintEvent:
					paints++
				}
				return true
			}))
			if tt.visible {
				w.Show()
				l.ProcessEvents()
				paints = 0
			}

			w.Resize(tt.to)
			l.ProcessEvents()

			if got := w.Size(); got != tt.wantSize {
				t.Errorf("Size = %v, want %v", got, tt.wantSize)
			}
			if got := len(resizes) == 1; got != tt.wantEvent {
				t.Fatalf("resize events = %v, want event %v", resizes, tt.wantEvent)
			}
			if tt.wantEvent && (resizes[0].Size != tt.to || resizes[0].OldSize != tt.from) {
				t.Errorf("ResizeEvent = %+v, want %v -> %v", resizes[0], tt.from, tt.to)
			}
			if got := paints > 0; got != tt.wantPaint {
				t.Errorf("paint scheduled = %v, want %v", got, tt.wantPaint)
			}
		})
	}
}

func TestWidgetShowHide(t *testing.T) {
	l := NewLoop(0)
	w := NewWidget(l)
	r := &recorder{}
	w.SetHandler(r)

	if w.IsVisible() {
		t.Fatal("new widget is visible")
	}
	w.Show()
	w.Show()
	if !w.IsVisible() {
		t.Fatal("Show did not make the widget visible")
	}
	l.ProcessEvents()
	w.Update()
	l.ProcessEvents()
	w.Hide()

	want := []EventType{EventShow, EventPaint, EventPaint, EventHide}
	got := r.seen()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWidgetDefaults(t *testing.T) {
	w := NewWidget(NewLoop(0), WithSize(-1, 20), WithDevicePixelRatio(0))
	if got := w.Size(); got != image.Pt(0, 20) {
		t.Errorf("Size = %v, want (0,20)", got)
	}
	if got := w.DevicePixelRatio(); got != 1 {
		t.Errorf("DevicePixelRatio = %v, want 1", got)
	}
	w.SetDevicePixelRatio(2)
	w.SetDevicePixelRatio(-1)
	if got := w.DevicePixelRatio(); got != 2 {
		t.Errorf("DevicePixelRatio = %v, want 2", got)
	}
	if w.HandleEvent(PaintEvent{}) {
		t.Error("widget without handler reported an event handled")
	}
}

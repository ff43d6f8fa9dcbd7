// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package toolkit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recorder is a Receiver that remembers event types.
type recorder struct {
	mu     sync.Mutex
	events []EventType
	handle bool
	onEv   func(Event)
}

func (r *recorder) HandleEvent(ev Event) bool {
	r.mu.Lock()
	r.events = append(r.events, ev.Type())
	fn := r.onEv
	r.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
	return r.handle
}

func (r *recorder) seen() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EventType(nil), r.events...)
}

func TestLoopPostOrder(t *testing.T) {
	l := NewLoop(0)
	r := &recorder{}

	l.Post(r, PaintEvent{})
	l.Post(r, KeyEvent{Key: KeySpace})
	l.Post(r, CloseEvent{})
	l.Post(nil, PaintEvent{})
	l.Post(r, nil)

	if got := l.Pending(); got != 3 {
		t.Fatalf("Pending = %d, want 3", got)
	}
	if got := l.ProcessEvents(); got != 3 {
		t.Errorf("ProcessEvents = %d, want 3", got)
	}
	want := []EventType{EventPaint, EventKey, EventClose}
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

func TestLoopProcessesNestedPosts(t *testing.T) {
	l := NewLoop(1)
	r := &recorder{}
	r.onEv = func(ev Event) {
		if _, ok := ev.(PaintEvent); ok {
			l.Post(r, UpdateRequestEvent{})
		}
	}

	l.Post(r, PaintEvent{})
	if got := l.ProcessEvents(); got != 2 {
		t.Errorf("ProcessEvents = %d, want 2", got)
	}
	if l.Pending() != 0 {
		t.Errorf("Pending = %d after ProcessEvents", l.Pending())
	}
}

func TestLoopSend(t *testing.T) {
	l := NewLoop(0)
	r := &recorder{handle: true}
	if !l.Send(r, ShowEvent{}) {
		t.Error("Send did not return the receiver's result")
	}
	if l.Send(nil, ShowEvent{}) {
		t.Error("Send to nil receiver reported handled")
	}
	if l.Pending() != 0 {
		t.Error("Send queued an event")
	}
}

func TestLoopRunExit(t *testing.T) {
	l := NewLoop(0)
	r := &recorder{}
	r.onEv = func(ev Event) {
		if k, ok := ev.(KeyEvent); ok && k.Key == KeyEscape {
			l.Exit(3)
		}
	}

	go func() {
		l.Post(r, PaintEvent{})
		l.Post(r, KeyEvent{Key: KeyEscape})
		l.Post(r, PaintEvent{})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	code, err := l.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 3 || l.ExitCode() != 3 {
		t.Errorf("exit code = %d/%d, want 3", code, l.ExitCode())
	}
	if !l.Exited() {
		t.Error("Exited = false after Exit")
	}

	// Later exits do not change the code and nothing else is delivered.
	l.Exit(7)
	before := len(r.seen())
	l.Post(r, PaintEvent{})
	l.ProcessEvents()
	if l.ExitCode() != 3 || len(r.seen()) != before {
		t.Error("loop kept running after Exit")
	}
}

func TestLoopRunContext(t *testing.T) {
	l := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestLoopConcurrentPost(t *testing.T) {
	l := NewLoop(0)
	r := &recorder{}

	const goroutines, each = 8, 100
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				l.Post(r, PaintEvent{})
			}
		}()
	}
	wg.Wait()

	if got := l.ProcessEvents(); got != goroutines*each {
		t.Errorf("ProcessEvents = %d, want %d", got, goroutines*each)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{PaintEvent{}, "Paint"},
		{UpdateRequestEvent{}, "UpdateRequest"},
		{ResizeEvent{}, "Resize"},
		{KeyEvent{}, "Key"},
		{CloseEvent{}, "Close"},
	}
	for _, tt := range tests {
		if got := tt.ev.Type().String(); got != tt.want {
			t.Errorf("%T type = %q, want %q", tt.ev, got, tt.want)
		}
	}
	if got := EventType(99).String(); got != "EventType(99)" {
		t.Errorf("unknown type = %q", got)
	}
}

func TestParseKey(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeySpace, KeyQ, KeyF11} {
		got, err := ParseKey(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKey(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKey("Hyper"); err == nil {
		t.Error("ParseKey accepted an unknown name")
	}
}

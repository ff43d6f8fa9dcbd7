// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package toolkit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/nativesurface"
)

// DefaultQueueCapacity is the initial size of a Loop's event queue.
const DefaultQueueCapacity = 64

type posted struct {
	r  Receiver
	ev Event
}

// Loop is a cooperative, single-threaded event loop.
//
// Post may be called from any goroutine. Events are delivered, one at a
// time and in posting order, by whichever goroutine calls ProcessEvents or
// Run. Every receiver callback therefore runs on that goroutine.
type Loop struct {
	log *slog.Logger

	mu    sync.Mutex
	queue []posted

	wake chan struct{}

	exitOnce sync.Once
	exited   chan struct{}
	code     atomic.Int64
}

// NewLoop creates a loop whose queue starts with the given capacity.
func NewLoop(capacity int) *Loop {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Loop{
		log:    nativesurface.LoggerFor("toolkit"),
		queue:  make([]posted, 0, capacity),
		wake:   make(chan struct{}, 1),
		exited: make(chan struct{}),
	}
}

// Post queues ev for r. It never blocks and never drops events.
func (l *Loop) Post(r Receiver, ev Event) {
	if r == nil || ev == nil {
		return
	}

	l.mu.Lock()
	l.queue = append(l.queue, posted{r: r, ev: ev})
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Send delivers ev to r immediately on the calling goroutine.
func (l *Loop) Send(r Receiver, ev Event) bool {
	if r == nil || ev == nil {
		return false
	}
	handled := r.HandleEvent(ev)
	l.log.Debug("event", slog.String("type", ev.Type().String()), slog.Bool("handled", handled))
	return handled
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// ProcessEvents delivers queued events until the queue is empty, including
// events posted by the handlers it runs. It returns the number delivered.
// It delivers nothing once Exit has been called.
func (l *Loop) ProcessEvents() int {
	n := 0
	for !l.Exited() {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return n
		}
		next := l.queue[0]
		l.queue[0] = posted{}
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.Send(next.r, next.ev)
		n++
	}
	return n
}

// Run processes events until Exit is called or ctx is done.
// It returns the exit code, or ctx.Err() if the context ended the loop.
func (l *Loop) Run(ctx context.Context) (int, error) {
	for {
		l.ProcessEvents()
		select {
		case <-l.exited:
			return int(l.code.Load()), nil
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-l.wake:
		}
	}
}

// Exit stops the loop with the given code. Only the first call counts.
func (l *Loop) Exit(code int) {
	l.exitOnce.Do(func() {
		l.code.Store(int64(code))
		close(l.exited)
		l.log.Info("loop exit", slog.Int("code", code))
	})
}

// Exited reports whether Exit has been called.
func (l *Loop) Exited() bool {
	select {
	case <-l.exited:
		return true
	default:
		return false
	}
}

// Done returns a channel closed by Exit.
func (l *Loop) Done() <-chan struct{} {
	return l.exited
}

// ExitCode returns the code passed to Exit, or 0 if the loop is running.
func (l *Loop) ExitCode() int {
	return int(l.code.Load())
}

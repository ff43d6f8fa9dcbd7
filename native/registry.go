// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"sync"
)

// Errors.
var (
	// ErrUnknownHandle is returned when a handle was never allocated or was released.
	ErrUnknownHandle = errors.New("native: unknown handle")

	// ErrNullHandle is returned when the null handle is used where a window is required.
	ErrNullHandle = errors.New("native: null handle")
)

// globalRegistry is the default registry used by toolkits and engines.
var globalRegistry = NewRegistry()

// Registry maps native handles to the presenters that display their frames.
//
// A toolkit allocates a handle when a widget first asks for its window id and
// attaches a presenter once the window can show pixels. Engines look the
// presenter up when building a swap chain. A handle without a presenter is
// valid; frames for it are skipped.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[Handle]Presenter
	next    Handle
}

// NewRegistry creates a new empty registry.
// Most code should use the package-level functions.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Handle]Presenter),
		next:    1,
	}
}

// Allocate reserves a new handle in the global registry.
func Allocate() Handle {
	return globalRegistry.Allocate()
}

// Attach binds a presenter to a handle in the global registry.
func Attach(h Handle, p Presenter) error {
	return globalRegistry.Attach(h, p)
}

// Lookup resolves a handle in the global registry.
func Lookup(h Handle) (Presenter, error) {
	return globalRegistry.Lookup(h)
}

// Release removes a handle from the global registry.
func Release(h Handle) {
	globalRegistry.Release(h)
}

// Allocate reserves a new, never reused handle.
func (r *Registry) Allocate() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.next
	r.next++
	r.entries[h] = nil
	return h
}

// Attach binds p to h, replacing any previous presenter.
// Passing a nil presenter detaches the window without releasing the handle.
func (r *Registry) Attach(h Handle, p Presenter) error {
	if h.IsNull() {
		return ErrNullHandle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[h]; !ok {
		return ErrUnknownHandle
	}
	r.entries[h] = p
	return nil
}

// Lookup returns the presenter bound to h.
// The presenter is nil if the handle is allocated but nothing is attached yet.
func (r *Registry) Lookup(h Handle) (Presenter, error) {
	if h.IsNull() {
		return nil, ErrNullHandle
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.entries[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return p, nil
}

// Release forgets h. Releasing an unknown handle is a no-op.
func (r *Registry) Release(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, h)
}

// Len returns the number of allocated handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

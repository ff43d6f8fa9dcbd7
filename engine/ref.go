// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"sync/atomic"

	"github.com/gogpu/nativesurface"
)

// shared is the reference count rooted at one engine.
type shared struct {
	eng    Engine
	owners atomic.Int64
}

// Ref is one owner's share of an Engine.
//
// Every party that must keep an engine alive (the render surface and each
// resource it creates) holds its own Ref. Release drops that share exactly
// once; when the last share goes, the engine is terminated. A nil or
// released Ref is invalid and yields a nil Engine.
type Ref struct {
	s        *shared
	released atomic.Bool
}

// Share roots a new reference count at e and returns the first Ref.
// Share(nil) returns nil.
func Share(e Engine) *Ref {
	if e == nil {
		return nil
	}
	s := &shared{eng: e}
	s.owners.Store(1)
	return &Ref{s: s}
}

// Clone returns an additional Ref to the same engine.
// Cloning a nil or released Ref returns nil.
func (r *Ref) Clone() *Ref {
	if !r.Valid() {
		return nil
	}
	r.s.owners.Add(1)
	return &Ref{s: r.s}
}

// Valid reports whether r still holds a share.
func (r *Ref) Valid() bool {
	return r != nil && r.s != nil && !r.released.Load()
}

// Engine returns the shared engine, or nil if r is invalid.
func (r *Ref) Engine() Engine {
	if !r.Valid() {
		return nil
	}
	return r.s.eng
}

// Same reports whether r and other share one engine.
func (r *Ref) Same(other *Ref) bool {
	return r.Valid() && other.Valid() && r.s == other.s
}

// Owners returns the number of live shares, or 0 if r is invalid.
func (r *Ref) Owners() int {
	if !r.Valid() {
		return 0
	}
	return int(r.s.owners.Load())
}

// Release drops r's share. Subsequent calls are no-ops. Releasing the last
// share terminates the engine, which waits for submitted work first.
func (r *Ref) Release() {
	if r == nil || r.s == nil || !r.released.CompareAndSwap(false, true) {
		return
	}
	if r.s.owners.Add(-1) == 0 {
		nativesurface.LoggerFor("engine").Info("last engine reference released, terminating")
		r.s.eng.Terminate()
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scoped

import (
	"errors"

	"github.com/gogpu/nativesurface/engine"
)

// ErrNoEngine is returned when a handle would be adopted without a valid
// engine share to destroy it with.
var ErrNoEngine = errors.New("scoped: no engine to own the resource")

// Handle is the set of engine object types a Resource can own.
type Handle interface {
	comparable
	engine.Object
}

// Resource owns one engine object of type T.
//
// The zero value is an empty owner without an engine.
type Resource[T Handle] struct {
	_      noCopy
	handle T
	ref    *engine.Ref
}

// NewResource takes ownership of h and of ref. Pass ref.Clone() to keep the
// caller's own share. h may be the zero value for an owner that is filled
// later with Reset.
func NewResource[T Handle](h T, ref *engine.Ref) *Resource[T] {
	return &Resource[T]{handle: h, ref: ref}
}

// Get returns the owned handle, or the zero value.
func (r *Resource[T]) Get() T {
	return r.handle
}

// Engine returns the owner's engine share.
func (r *Resource[T]) Engine() *engine.Ref {
	return r.ref
}

// Valid reports whether r owns a handle it can destroy.
func (r *Resource[T]) Valid() bool {
	var zero T
	return r != nil && r.handle != zero && r.ref.Valid()
}

// Reset destroys the current handle, if any, then adopts h.
// Adopting a non-zero handle without a valid engine share fails with
// ErrNoEngine and leaves r empty.
func (r *Resource[T]) Reset(h T) error {
	r.destroy()
	var zero T
	if h != zero && !r.ref.Valid() {
		return ErrNoEngine
	}
	r.handle = h
	return nil
}

// Take gives up ownership of the handle without destroying it.
// The engine share stays with r.
func (r *Resource[T]) Take() T {
	h := r.handle
	var zero T
	r.handle = zero
	return h
}

// Move returns a new owner holding r's handle and engine share.
// r is left empty.
func (r *Resource[T]) Move() *Resource[T] {
	dst := &Resource[T]{}
	dst.MoveFrom(r)
	return dst
}

// MoveFrom destroys r's current handle and releases its engine share, then
// takes src's handle and share. src is left empty. Moving from r itself is a
// no-op.
func (r *Resource[T]) MoveFrom(src *Resource[T]) {
	if src == nil || src == r {
		return
	}
	r.Close()

	var zero T
	r.handle, src.handle = src.handle, zero
	r.ref, src.ref = src.ref, nil
}

// Close destroys the handle through the owning engine and releases the
// engine share. It is safe to call more than once.
func (r *Resource[T]) Close() {
	if r == nil {
		return
	}
	r.destroy()
	if r.ref != nil {
		r.ref.Release()
		r.ref = nil
	}
}

func (r *Resource[T]) destroy() {
	var zero T
	if r.handle == zero {
		return
	}
	if eng := r.ref.Engine(); eng != nil {
		eng.Destroy(r.handle)
	}
	r.handle = zero
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scoped

import "github.com/gogpu/nativesurface/engine"

// Entity owns one engine entity id.
//
// The zero value holds the null entity and no engine. The id and the engine
// share can be supplied separately because an entity is often allocated
// after its owner is constructed.
type Entity struct {
	_      noCopy
	entity engine.Entity
	ref    *engine.Ref
}

// NewEntity takes ownership of e and of ref.
func NewEntity(e engine.Entity, ref *engine.Ref) *Entity {
	return &Entity{entity: e, ref: ref}
}

// Get returns the raw entity id.
func (s *Entity) Get() engine.Entity {
	return s.entity
}

// Ptr returns a pointer to the raw id for APIs that fill it in place.
// Writing through the pointer replaces the id without destroying the old one.
func (s *Entity) Ptr() *engine.Entity {
	return &s.entity
}

// Engine returns the owner's engine share.
func (s *Entity) Engine() *engine.Ref {
	return s.ref
}

// Valid reports whether s owns a live entity it can destroy.
func (s *Entity) Valid() bool {
	return s != nil && !s.entity.IsNull() && s.ref.Valid()
}

// SetEntity destroys the current entity, if any, then adopts e.
func (s *Entity) SetEntity(e engine.Entity) {
	if s.entity == e {
		return
	}
	s.destroy()
	s.entity = e
}

// SetEngine replaces the engine share. A held entity that belongs to a
// different engine is destroyed through its own engine first.
func (s *Entity) SetEngine(ref *engine.Ref) {
	if s.ref == ref {
		return
	}
	if s.ref.Valid() && !s.ref.Same(ref) {
		s.destroy()
	}
	if s.ref != nil {
		s.ref.Release()
	}
	s.ref = ref
}

// Move returns a new owner holding s's entity and engine share.
// s is left empty.
func (s *Entity) Move() *Entity {
	dst := &Entity{}
	dst.MoveFrom(s)
	return dst
}

// MoveFrom destroys s's entity and releases its engine share, then takes
// src's entity and share. src is left empty.
func (s *Entity) MoveFrom(src *Entity) {
	if src == nil || src == s {
		return
	}
	s.Close()

	s.entity, src.entity = src.entity, engine.Entity{}
	s.ref, src.ref = src.ref, nil
}

// Close destroys the entity through the owning engine and releases the
// engine share. It is safe to call more than once.
func (s *Entity) Close() {
	if s == nil {
		return
	}
	s.destroy()
	if s.ref != nil {
		s.ref.Release()
		s.ref = nil
	}
}

func (s *Entity) destroy() {
	if s.entity.IsNull() {
		return
	}
	if eng := s.ref.Engine(); eng != nil {
		eng.DestroyEntity(s.entity)
	}
	s.entity = engine.Entity{}
}

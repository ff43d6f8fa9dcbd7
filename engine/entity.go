// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import "fmt"

// Entity is a lightweight identifier for a renderable inside an engine.
//
// An entity is a slot index paired with a generation. Slots are reused
// after destruction with a bumped generation, so a stale id never aliases
// a newer entity. The zero value is the null entity.
type Entity struct {
	index      uint32
	generation uint32
}

// NewEntity builds an entity id. Engines call this; generation 0 yields the
// null entity.
func NewEntity(index, generation uint32) Entity {
	if generation == 0 {
		return Entity{}
	}
	return Entity{index: index, generation: generation}
}

// EntityFromID rebuilds an entity from the value returned by ID.
func EntityFromID(id uint64) Entity {
	return NewEntity(uint32(id), uint32(id>>32))
}

// IsNull reports whether e is the null entity.
func (e Entity) IsNull() bool {
	return e.generation == 0
}

// Index returns the slot index.
func (e Entity) Index() uint32 {
	return e.index
}

// Generation returns the slot generation.
func (e Entity) Generation() uint32 {
	return e.generation
}

// ID packs the entity into one integer for APIs that expect a raw id.
func (e Entity) ID() uint64 {
	return uint64(e.generation)<<32 | uint64(e.index)
}

func (e Entity) String() string {
	if e.IsNull() {
		return "Entity(null)"
	}
	return fmt.Sprintf("Entity(%d@%d)", e.index, e.generation)
}

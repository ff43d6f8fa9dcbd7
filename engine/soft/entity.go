// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import "github.com/gogpu/nativesurface/engine"

// entitySlot is one row of the entity table. A slot is reused after its
// entity is destroyed, with the generation bumped so stale ids miss.
type entitySlot struct {
	generation uint32
	alive      bool
	renderable *renderable
}

// entityTable is a generation-checked slot allocator. Index 0 is reserved
// so the zero Entity never resolves.
type entityTable struct {
	slots []entitySlot
	free  []uint32
	count int
}

func (t *entityTable) create() engine.Entity {
	if len(t.slots) == 0 {
		t.slots = append(t.slots, entitySlot{})
	}

	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots))
		t.slots = append(t.slots, entitySlot{})
	}

	s := &t.slots[index]
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	s.alive = true
	s.renderable = nil
	t.count++
	return engine.NewEntity(index, s.generation)
}

// get returns the live slot for e, or nil.
func (t *entityTable) get(e engine.Entity) *entitySlot {
	if e.IsNull() || int(e.Index()) >= len(t.slots) {
		return nil
	}
	s := &t.slots[e.Index()]
	if !s.alive || s.generation != e.Generation() {
		return nil
	}
	return s
}

func (t *entityTable) destroy(e engine.Entity) bool {
	s := t.get(e)
	if s == nil {
		return false
	}
	s.alive = false
	s.renderable = nil
	t.free = append(t.free, e.Index())
	t.count--
	return true
}

func (t *entityTable) live() int { return t.count }

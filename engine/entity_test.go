// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import "testing"

func TestEntity(t *testing.T) {
	tests := []struct {
		name     string
		entity   Entity
		wantNull bool
		wantStr  string
	}{
		{"zero", Entity{}, true, "Entity(null)"},
		{"generation zero", NewEntity(7, 0), true, "Entity(null)"},
		{"live", NewEntity(7, 3), false, "Entity(7@3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entity.IsNull(); got != tt.wantNull {
				t.Errorf("IsNull() = %v, want %v", got, tt.wantNull)
			}
			if got := tt.entity.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestEntityIDRoundTrip(t *testing.T) {
	e := NewEntity(0xdead, 0xbeef)
	if got := EntityFromID(e.ID()); got != e {
		t.Errorf("EntityFromID(ID()) = %v, want %v", got, e)
	}
	if EntityFromID(0) != (Entity{}) {
		t.Error("EntityFromID(0) should be null")
	}
}

func TestKindString(t *testing.T) {
	if got := KindVertexBuffer.String(); got != "VertexBuffer" {
		t.Errorf("String() = %q, want VertexBuffer", got)
	}
	if got := Kind(200).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func triangleLayout() VertexBufferDesc {
	return VertexBufferDesc{
		VertexCount: 3,
		BufferCount: 1,
		Attributes: []AttributeDesc{
			{Attribute: AttributePosition, Format: gputypes.VertexFormatFloat32x2, Offset: 0, Stride: 12},
			{Attribute: AttributeColor, Format: gputypes.VertexFormatUnorm8x4, Offset: 8, Stride: 12, Normalized: true},
		},
	}
}

func TestVertexBufferDescValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VertexBufferDesc)
		ok     bool
	}{
		{"valid", func(*VertexBufferDesc) {}, true},
		{"no vertices", func(d *VertexBufferDesc) { d.VertexCount = 0 }, false},
		{"no buffers", func(d *VertexBufferDesc) { d.BufferCount = 0 }, false},
		{"slot out of range", func(d *VertexBufferDesc) { d.Attributes[1].Slot = 1 }, false},
		{"overflow stride", func(d *VertexBufferDesc) { d.Attributes[1].Offset = 10 }, false},
		{"duplicate", func(d *VertexBufferDesc) { d.Attributes[1].Attribute = AttributePosition }, false},
		{"missing position", func(d *VertexBufferDesc) { d.Attributes = d.Attributes[1:] }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := triangleLayout()
			tt.mutate(&d)
			err := d.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidDescriptor)
			}
		})
	}
}

func TestVertexBufferDescSlotSize(t *testing.T) {
	if got := triangleLayout().SlotSize(0); got != 36 {
		t.Errorf("SlotSize(0) = %d, want 36", got)
	}
}

func TestIndexBufferDesc(t *testing.T) {
	d := IndexBufferDesc{IndexCount: 3, Format: gputypes.IndexFormatUint16}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if d.IndexSize() != 2 {
		t.Errorf("IndexSize() = %d, want 2", d.IndexSize())
	}
	d.IndexCount = 0
	if err := d.Validate(); !errors.Is(err, ErrInvalidDescriptor) {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidDescriptor)
	}
}

func TestParseVertexAttribute(t *testing.T) {
	tests := []struct {
		in      string
		want    VertexAttribute
		wantErr bool
	}{
		{"POSITION", AttributePosition, false},
		{"color", AttributeColor, false},
		{"Uv0", AttributeUV0, false},
		{"normal", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVertexAttribute(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

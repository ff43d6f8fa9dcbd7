// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"
)

// VertexAttribute names the semantic of a vertex attribute.
type VertexAttribute uint8

// Vertex attributes understood by materials.
const (
	AttributePosition VertexAttribute = iota
	AttributeTangents
	AttributeColor
	AttributeUV0
)

func (a VertexAttribute) String() string {
	switch a {
	case AttributePosition:
		return "POSITION"
	case AttributeTangents:
		return "TANGENTS"
	case AttributeColor:
		return "COLOR"
	case AttributeUV0:
		return "UV0"
	default:
		return fmt.Sprintf("VertexAttribute(%d)", uint8(a))
	}
}

// ParseVertexAttribute returns the attribute named s, ignoring case.
func ParseVertexAttribute(s string) (VertexAttribute, error) {
	for a := AttributePosition; a <= AttributeUV0; a++ {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown vertex attribute %q", s)
}

// AttributeDesc places one attribute inside a vertex buffer slot.
type AttributeDesc struct {
	Attribute  VertexAttribute
	Slot       int
	Format     gputypes.VertexFormat
	Offset     uint32
	Stride     uint32
	Normalized bool
}

// VertexBufferDesc describes the layout of a vertex buffer.
type VertexBufferDesc struct {
	VertexCount int
	BufferCount int
	Attributes  []AttributeDesc
}

// FormatSize returns the size in bytes of one element of f, or 0 if f is
// not supported.
func FormatSize(f gputypes.VertexFormat) uint32 {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 4
	case gputypes.VertexFormatFloat32x2:
		return 8
	case gputypes.VertexFormatFloat32x3:
		return 12
	case gputypes.VertexFormatFloat32x4:
		return 16
	case gputypes.VertexFormatUnorm8x4:
		return 4
	default:
		return 0
	}
}

// Validate checks counts, slots and that every attribute fits its stride.
func (d VertexBufferDesc) Validate() error {
	if d.VertexCount <= 0 {
		return fmt.Errorf("%w: vertex count %d", ErrInvalidDescriptor, d.VertexCount)
	}
	if d.BufferCount <= 0 {
		return fmt.Errorf("%w: buffer count %d", ErrInvalidDescriptor, d.BufferCount)
	}
	seen := make(map[VertexAttribute]bool, len(d.Attributes))
	for _, a := range d.Attributes {
		if seen[a.Attribute] {
			return fmt.Errorf("%w: attribute %v declared twice", ErrInvalidDescriptor, a.Attribute)
		}
		seen[a.Attribute] = true
		if a.Slot < 0 || a.Slot >= d.BufferCount {
			return fmt.Errorf("%w: attribute %v slot %d out of range", ErrInvalidDescriptor, a.Attribute, a.Slot)
		}
		size := FormatSize(a.Format)
		if size == 0 {
			return fmt.Errorf("%w: attribute %v has unsupported format", ErrInvalidDescriptor, a.Attribute)
		}
		if a.Offset+size > a.Stride {
			return fmt.Errorf("%w: attribute %v overflows stride %d", ErrInvalidDescriptor, a.Attribute, a.Stride)
		}
	}
	if !seen[AttributePosition] {
		return fmt.Errorf("%w: missing %v attribute", ErrInvalidDescriptor, AttributePosition)
	}
	return nil
}

// SlotSize returns the number of bytes a slot's data must hold.
func (d VertexBufferDesc) SlotSize(slot int) int {
	var stride uint32
	for _, a := range d.Attributes {
		if a.Slot == slot && a.Stride > stride {
			stride = a.Stride
		}
	}
	return int(stride) * d.VertexCount
}

// IndexBufferDesc describes an index buffer.
type IndexBufferDesc struct {
	IndexCount int
	Format     gputypes.IndexFormat
}

// IndexSize returns the size of one index in bytes, or 0 if unsupported.
func (d IndexBufferDesc) IndexSize() int {
	switch d.Format {
	case gputypes.IndexFormatUint16:
		return 2
	case gputypes.IndexFormatUint32:
		return 4
	default:
		return 0
	}
}

// Validate checks the index count and format.
func (d IndexBufferDesc) Validate() error {
	if d.IndexCount <= 0 {
		return fmt.Errorf("%w: index count %d", ErrInvalidDescriptor, d.IndexCount)
	}
	if d.IndexSize() == 0 {
		return fmt.Errorf("%w: unsupported index format", ErrInvalidDescriptor)
	}
	return nil
}

// Primitive is one draw of a renderable.
type Primitive struct {
	Topology gputypes.PrimitiveTopology
	Vertices VertexBuffer
	Indices  IndexBuffer
	Offset   int
	Count    int
	Material MaterialInstance
}

// RenderableDesc describes the renderable attached to an entity.
type RenderableDesc struct {
	BoundingBox    math32.Box3
	Primitives     []Primitive
	Culling        bool
	ReceiveShadows bool
	CastShadows    bool
}

// Validate checks that every primitive references buffers and a material
// and stays inside its index buffer.
func (d RenderableDesc) Validate() error {
	if len(d.Primitives) == 0 {
		return fmt.Errorf("%w: renderable has no primitives", ErrInvalidDescriptor)
	}
	if d.BoundingBox.IsEmpty() {
		return fmt.Errorf("%w: empty bounding box", ErrInvalidDescriptor)
	}
	for i, p := range d.Primitives {
		if p.Vertices == nil || p.Indices == nil {
			return fmt.Errorf("%w: primitive %d missing buffers", ErrInvalidDescriptor, i)
		}
		if p.Material == nil {
			return fmt.Errorf("%w: primitive %d missing material", ErrInvalidDescriptor, i)
		}
		if p.Offset < 0 || p.Count <= 0 || p.Offset+p.Count > p.Indices.IndexCount() {
			return fmt.Errorf("%w: primitive %d range [%d,%d) outside index buffer",
				ErrInvalidDescriptor, i, p.Offset, p.Offset+p.Count)
		}
	}
	return nil
}

// Viewport is a pixel rectangle with a bottom-left origin.
type Viewport struct {
	Left, Bottom  int
	Width, Height uint32
}

// Empty reports whether the viewport covers no pixels.
func (v Viewport) Empty() bool {
	return v.Width == 0 || v.Height == 0
}

// DepthPrepass selects whether a view renders a depth-only pass first.
type DepthPrepass uint8

// Depth prepass modes.
const (
	DepthPrepassDefault DepthPrepass = iota
	DepthPrepassDisabled
	DepthPrepassEnabled
)

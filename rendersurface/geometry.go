// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendersurface

import (
	"encoding/binary"
	"math"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/nativesurface/engine"
)

// vertex is the interleaved layout uploaded to the vertex buffer:
// two float32 position components followed by a packed 8-bit color.
type vertex struct {
	x, y  float32
	color uint32
}

const vertexStride = 12

// triangle has its corners on the unit circle at 0, 2π/3 and 4π/3.
var triangle = [3]vertex{
	{x: 1, y: 0, color: 0xffff0000},
	{x: float32(math.Cos(2 * math.Pi / 3)), y: float32(math.Sin(2 * math.Pi / 3)), color: 0xff00ff00},
	{x: float32(math.Cos(4 * math.Pi / 3)), y: float32(math.Sin(4 * math.Pi / 3)), color: 0xff0000ff},
}

var triangleIndices = [3]uint16{0, 1, 2}

// boundingBox encloses the triangle with room to spare on every axis.
var boundingBox = math32.B3(-1, -1, -1, 1, 1, 1)

var vertexLayout = engine.VertexBufferDesc{
	VertexCount: len(triangle),
	BufferCount: 1,
	Attributes: []engine.AttributeDesc{
		{
			Attribute: engine.AttributePosition,
			Format:    gputypes.VertexFormatFloat32x2,
			Offset:    0,
			Stride:    vertexStride,
		},
		{
			Attribute:  engine.AttributeColor,
			Format:     gputypes.VertexFormatUnorm8x4,
			Offset:     8,
			Stride:     vertexStride,
			Normalized: true,
		},
	},
}

var indexLayout = engine.IndexBufferDesc{
	IndexCount: len(triangleIndices),
	Format:     gputypes.IndexFormatUint16,
}

// vertexBytes packs vs little-endian, the way the struct lies in memory.
func vertexBytes(vs []vertex) []byte {
	buf := make([]byte, 0, len(vs)*vertexStride)
	for _, v := range vs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.x))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.y))
		buf = binary.LittleEndian.AppendUint32(buf, v.color)
	}
	return buf
}

func indexBytes(idx []uint16) []byte {
	buf := make([]byte, 0, len(idx)*2)
	for _, i := range idx {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	return buf
}

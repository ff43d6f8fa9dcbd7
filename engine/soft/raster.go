// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"encoding/binary"
	"math"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/nativesurface/engine"
)

// subdivisionStep is the target edge length in pixels of the solid
// sub-triangles used to approximate per-vertex color interpolation.
const subdivisionStep = 12.0

const maxSubdivisions = 24

var white = gg.RGBA{R: 1, G: 1, B: 1, A: 1}

// transform maps world positions to target pixels.
type transform struct {
	viewMat, projMat *math32.Matrix4
	vp               engine.Viewport
	height           int
}

// pixel returns the target pixel position of a world point. The y axis of
// the target grows downwards; viewports are bottom-left based.
func (t transform) pixel(pt math32.Vector3) (x, y float64) {
	ndc := engine.Project(pt, t.viewMat, t.projMat)
	x = float64(t.vp.Left) + (float64(ndc.X)+1)/2*float64(t.vp.Width)
	yUp := float64(t.vp.Bottom) + (float64(ndc.Y)+1)/2*float64(t.vp.Height)
	return x, float64(t.height) - yUp
}

type vertex struct {
	x, y float64
	c    gg.RGBA
}

type triangle [3]vertex

// triangles assembles the primitive's index range into screen triangles.
func (in drawInput) triangles(xf transform) []triangle {
	pos := attributeOf(in.desc, engine.AttributePosition)
	col := attributeOf(in.desc, engine.AttributeColor)
	if pos == nil {
		return nil
	}

	isize := in.ifmt.IndexSize()
	end := in.offset + in.count
	if isize == 0 || end*isize > len(in.indices) {
		return nil
	}

	var out []triangle
	for i := in.offset; i+2 < end; i += 3 {
		var tri triangle
		ok := true
		for k := 0; k < 3; k++ {
			idx := readIndex(in.indices, i+k, isize)
			if idx >= in.desc.VertexCount {
				ok = false
				break
			}
			p, okp := readVec3(in.slots, pos, idx)
			if !okp {
				ok = false
				break
			}
			c := white
			if col != nil {
				if rc, okc := readColor(in.slots, col, idx); okc {
					c = rc
				}
			}
			if in.opaque {
				c.A = 1
			}
			x, y := xf.pixel(p)
			tri[k] = vertex{x: x, y: y, c: c}
		}
		if ok {
			out = append(out, tri)
		}
	}
	return out
}

func attributeOf(d engine.VertexBufferDesc, a engine.VertexAttribute) *engine.AttributeDesc {
	for i := range d.Attributes {
		if d.Attributes[i].Attribute == a {
			return &d.Attributes[i]
		}
	}
	return nil
}

func readIndex(data []byte, i, size int) int {
	if size == 2 {
		return int(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return int(binary.LittleEndian.Uint32(data[i*4:]))
}

// element returns the bytes of attribute a for vertex idx.
func element(slots [][]byte, a *engine.AttributeDesc, idx int) ([]byte, bool) {
	if a.Slot >= len(slots) {
		return nil, false
	}
	data := slots[a.Slot]
	start := idx*int(a.Stride) + int(a.Offset)
	n := int(engine.FormatSize(a.Format))
	if data == nil || start+n > len(data) {
		return nil, false
	}
	return data[start : start+n], true
}

func readFloat(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func readVec3(slots [][]byte, a *engine.AttributeDesc, idx int) (math32.Vector3, bool) {
	b, ok := element(slots, a, idx)
	if !ok {
		return math32.Vector3{}, false
	}
	var v math32.Vector3
	switch a.Format {
	case gputypes.VertexFormatFloat32x2:
		v = math32.Vec3(readFloat(b, 0), readFloat(b, 1), 0)
	case gputypes.VertexFormatFloat32x3, gputypes.VertexFormatFloat32x4:
		v = math32.Vec3(readFloat(b, 0), readFloat(b, 1), readFloat(b, 2))
	default:
		return math32.Vector3{}, false
	}
	return v, true
}

// readColor decodes a color attribute. Unsigned bytes are taken in memory
// order (R, G, B, A) and scaled to [0,1] when the attribute is normalized.
func readColor(slots [][]byte, a *engine.AttributeDesc, idx int) (gg.RGBA, bool) {
	b, ok := element(slots, a, idx)
	if !ok {
		return gg.RGBA{}, false
	}
	switch a.Format {
	case gputypes.VertexFormatUnorm8x4:
		scale := 1.0
		if a.Normalized {
			scale = 1.0 / 255
		}
		return gg.RGBA{
			R: clamp01(float64(b[0]) * scale),
			G: clamp01(float64(b[1]) * scale),
			B: clamp01(float64(b[2]) * scale),
			A: clamp01(float64(b[3]) * scale),
		}, true
	case gputypes.VertexFormatFloat32x4:
		return gg.RGBA{
			R: clamp01(float64(readFloat(b, 0))),
			G: clamp01(float64(readFloat(b, 1))),
			B: clamp01(float64(readFloat(b, 2))),
			A: clamp01(float64(readFloat(b, 3))),
		}, true
	case gputypes.VertexFormatFloat32x3:
		return gg.RGBA{
			R: clamp01(float64(readFloat(b, 0))),
			G: clamp01(float64(readFloat(b, 1))),
			B: clamp01(float64(readFloat(b, 2))),
			A: 1,
		}, true
	}
	return gg.RGBA{}, false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// fillTriangle fills tri with colors interpolated between its vertices.
//
// gg fills paths with solid paint only, so the triangle is split into a
// regular grid of sub-triangles, each filled with the color at its centroid.
// Sub-triangles are grown by a fraction of a pixel so anti-aliased shared
// edges do not let the background through.
func fillTriangle(dc *gg.Context, tri triangle) {
	a, b, c := tri[0], tri[1], tri[2]
	area := (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
	if math.Abs(area) < 1e-9 {
		return
	}

	if a.c == b.c && b.c == c.c {
		fillSolid(dc, [3][2]float64{{a.x, a.y}, {b.x, b.y}, {c.x, c.y}}, a.c, 0)
		return
	}

	longest := math.Max(dist(a, b), math.Max(dist(b, c), dist(c, a)))
	n := int(math.Ceil(longest / subdivisionStep))
	n = max(1, min(n, maxSubdivisions))

	at := func(u, v float64) [2]float64 {
		return [2]float64{
			a.x + u*(b.x-a.x) + v*(c.x-a.x),
			a.y + u*(b.y-a.y) + v*(c.y-a.y),
		}
	}
	colorAt := func(u, v float64) gg.RGBA {
		w := 1 - u - v
		return gg.RGBA{
			R: w*a.c.R + u*b.c.R + v*c.c.R,
			G: w*a.c.G + u*b.c.G + v*c.c.G,
			B: w*a.c.B + u*b.c.B + v*c.c.B,
			A: w*a.c.A + u*b.c.A + v*c.c.A,
		}
	}

	pad := 0.0
	if n > 1 {
		pad = 0.35
	}
	step := 1 / float64(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n-i; j++ {
			u, v := float64(i)*step, float64(j)*step
			up := [3][2]float64{at(u, v), at(u+step, v), at(u, v+step)}
			fillSolid(dc, up, colorAt(u+step/3, v+step/3), pad)

			if i+j < n-1 {
				down := [3][2]float64{at(u+step, v), at(u+step, v+step), at(u, v+step)}
				fillSolid(dc, down, colorAt(u+2*step/3, v+2*step/3), pad)
			}
		}
	}
}

// fillSolid fills pts with col after moving every corner pad pixels away
// from the centroid.
func fillSolid(dc *gg.Context, pts [3][2]float64, col gg.RGBA, pad float64) {
	cx := (pts[0][0] + pts[1][0] + pts[2][0]) / 3
	cy := (pts[0][1] + pts[1][1] + pts[2][1]) / 3
	if pad > 0 {
		for i := range pts {
			dx, dy := pts[i][0]-cx, pts[i][1]-cy
			if l := math.Hypot(dx, dy); l > 0 {
				pts[i][0] += dx / l * pad
				pts[i][1] += dy / l * pad
			}
		}
	}

	dc.MoveTo(pts[0][0], pts[0][1])
	dc.LineTo(pts[1][0], pts[1][1])
	dc.LineTo(pts[2][0], pts[2][1])
	dc.ClosePath()
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	_ = dc.Fill()
}

func dist(p, q vertex) float64 {
	return math.Hypot(q.x-p.x, q.y-p.y)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import "cogentcore.org/core/math32"

// ProjectionKind selects the projection model.
type ProjectionKind uint8

// Projection kinds.
const (
	ProjectionOrtho ProjectionKind = iota
	ProjectionPerspective
)

// Projection is a camera projection given by its frustum planes.
type Projection struct {
	Kind                     ProjectionKind
	Left, Right, Bottom, Top float64
	Near, Far                float64
}

// Ortho returns an orthographic projection.
func Ortho(left, right, bottom, top, near, far float64) Projection {
	return Projection{
		Kind:   ProjectionOrtho,
		Left:   left,
		Right:  right,
		Bottom: bottom,
		Top:    top,
		Near:   near,
		Far:    far,
	}
}

// HalfExtents returns half the frustum width and height.
func (p Projection) HalfExtents() (x, y float64) {
	return (p.Right - p.Left) / 2, (p.Top - p.Bottom) / 2
}

// Matrix returns the column-major clip matrix for p.
// Degenerate planes produce the identity.
func (p Projection) Matrix() math32.Matrix4 {
	var m math32.Matrix4
	m.SetIdentity()

	w := p.Right - p.Left
	h := p.Top - p.Bottom
	d := p.Far - p.Near
	if w == 0 || h == 0 || d == 0 {
		return m
	}

	switch p.Kind {
	case ProjectionPerspective:
		if p.Near <= 0 {
			return m
		}
		m[0] = float32(2 * p.Near / w)
		m[5] = float32(2 * p.Near / h)
		m[8] = float32((p.Right + p.Left) / w)
		m[9] = float32((p.Top + p.Bottom) / h)
		m[10] = float32(-(p.Far + p.Near) / d)
		m[11] = -1
		m[14] = float32(-2 * p.Far * p.Near / d)
		m[15] = 0
	default:
		m[0] = float32(2 / w)
		m[5] = float32(2 / h)
		m[10] = float32(-2 / d)
		m[12] = float32(-(p.Right + p.Left) / w)
		m[13] = float32(-(p.Top + p.Bottom) / h)
		m[14] = float32(-(p.Far + p.Near) / d)
	}
	return m
}

// LookAtMatrix returns the view matrix of a camera at eye facing target.
func LookAtMatrix(eye, target, up math32.Vector3) math32.Matrix4 {
	var q math32.Quat
	q.SetFromRotationMatrix(math32.NewLookAt(eye, target, up))

	var pose math32.Matrix4
	pose.SetTransform(eye, q, math32.Vec3(1, 1, 1))

	view, err := pose.Inverse()
	if err != nil || view == nil {
		var id math32.Matrix4
		id.SetIdentity()
		return id
	}
	return *view
}

// Project maps a world-space point through view and projection to
// normalized device coordinates.
func Project(pt math32.Vector3, view, proj *math32.Matrix4) math32.Vector3 {
	return math32.Vector4FromVector3(pt, 1).MulMatrix4(view).MulMatrix4(proj).PerspDiv()
}

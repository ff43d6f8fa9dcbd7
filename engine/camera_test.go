// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"math"
	"testing"

	"cogentcore.org/core/math32"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestOrthoHalfExtents(t *testing.T) {
	p := Ortho(-2, 2, -1.5, 1.5, 0, 1)
	x, y := p.HalfExtents()
	if x != 2 || y != 1.5 {
		t.Errorf("HalfExtents() = (%v, %v), want (2, 1.5)", x, y)
	}
}

func TestOrthoMatrixMapsCornersToNDC(t *testing.T) {
	p := Ortho(-2, 2, -1.5, 1.5, 0, 1)
	proj := p.Matrix()
	var view math32.Matrix4
	view.SetIdentity()

	got := Project(math32.Vec3(2, 1.5, 0), &view, &proj)
	if !near(got.X, 1) || !near(got.Y, 1) {
		t.Errorf("corner projects to (%v, %v), want (1, 1)", got.X, got.Y)
	}
	got = Project(math32.Vec3(-2, -1.5, 0), &view, &proj)
	if !near(got.X, -1) || !near(got.Y, -1) {
		t.Errorf("corner projects to (%v, %v), want (-1, -1)", got.X, got.Y)
	}
}

func TestDegenerateProjectionIsIdentity(t *testing.T) {
	m := Ortho(1, 1, -1, 1, 0, 1).Matrix()
	var id math32.Matrix4
	id.SetIdentity()
	if m != id {
		t.Errorf("degenerate Matrix() = %v, want identity", m)
	}
}

func TestLookAtMatrixFromFront(t *testing.T) {
	view := LookAtMatrix(math32.Vec3(0, 0, 1), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	var proj math32.Matrix4
	proj.SetIdentity()

	got := Project(math32.Vec3(0.5, 0.25, 0), &view, &proj)
	if !near(got.X, 0.5) || !near(got.Y, 0.25) || !near(got.Z, -1) {
		t.Errorf("Project() = %v, want (0.5, 0.25, -1)", got)
	}
}

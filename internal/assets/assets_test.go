// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package assets

import (
	"testing"

	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/material"
)

func TestBakedColorDecodes(t *testing.T) {
	p, err := material.Decode(BakedColor)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Name != "bakedColor" {
		t.Errorf("Name = %q, want bakedColor", p.Name)
	}
	if p.Shading != material.ShadingUnlit {
		t.Errorf("Shading = %v, want unlit", p.Shading)
	}
	if !p.Requires(engine.AttributePosition) || !p.Requires(engine.AttributeColor) {
		t.Errorf("Attributes = %#x, want position|color", p.Attributes)
	}
	if p.Requires(engine.AttributeUV0) {
		t.Error("bakedColor should not require UV0")
	}
	if p.WGSL != BakedColorWGSL {
		t.Error("embedded WGSL differs from package source")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/nativesurface/engine"
)

// Source is the input of the offline material compiler.
type Source struct {
	Name       string
	Shading    Shading
	Blending   Blending
	Attributes []engine.VertexAttribute
	WGSL       string

	// KeepSource embeds the WGSL text next to the SPIR-V module.
	KeepSource bool
}

// Compile translates src.WGSL to SPIR-V and assembles a Package.
func Compile(src Source) (*Package, error) {
	if src.Name == "" {
		return nil, fmt.Errorf("material: compile: empty name")
	}
	spirv, err := naga.Compile(src.WGSL)
	if err != nil {
		return nil, fmt.Errorf("material: compile %s: %w", src.Name, err)
	}
	words, err := spirvWords(spirv)
	if err != nil {
		return nil, fmt.Errorf("material: compile %s: %w", src.Name, err)
	}

	p := &Package{
		Name:     src.Name,
		Shading:  src.Shading,
		Blending: src.Blending,
		SPIRV:    words,
	}
	for _, a := range src.Attributes {
		p.Require(a)
	}
	if src.KeepSource {
		p.WGSL = src.WGSL
	}
	return p, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package material reads and writes compiled material packages.
//
// A package is produced offline (see cmd/matc) and consumed by engines as an
// immutable byte slice. Layout, all integers little-endian:
//
//	magic   "GMAT"
//	version uint16
//	flags   uint16 (reserved, zero)
//	sections...
//
// Each section is a 4-byte tag, a uint32 payload length and the payload.
// The last section is "END " with an empty payload. Unknown tags are skipped
// so newer compilers can add sections without breaking older engines.
//
//	NAME  material name (UTF-8)
//	SHAD  shading model, one byte
//	BLND  blending mode, one byte
//	ATTR  uint32 bit mask of required vertex attributes
//	WGSL  shader source (optional)
//	SPRV  SPIR-V module (optional, whole 32-bit words)
package material

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/nativesurface/engine"
)

// Version is the package format version written by Encode.
const Version = 1

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

var magic = [4]byte{'G', 'M', 'A', 'T'}

// Errors returned by Decode.
var (
	// ErrBadMagic is returned when data does not start with the package magic.
	ErrBadMagic = errors.New("material: not a material package")

	// ErrUnsupportedVersion is returned for packages newer than this reader.
	ErrUnsupportedVersion = errors.New("material: unsupported package version")

	// ErrTruncated is returned when a section runs past the end of data.
	ErrTruncated = errors.New("material: truncated package")

	// ErrMissingSection is returned when a required section is absent.
	ErrMissingSection = errors.New("material: missing required section")

	// ErrInvalidSPIRV is returned when an SPRV section is malformed.
	ErrInvalidSPIRV = errors.New("material: invalid SPIR-V module")
)

// SectionError reports a malformed section.
type SectionError struct {
	Tag string
	Err error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("material: section %q: %v", e.Tag, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// Shading is the lighting model of a material.
type Shading uint8

// Shading models.
const (
	ShadingUnlit Shading = iota
	ShadingLit
)

func (s Shading) String() string {
	switch s {
	case ShadingUnlit:
		return "unlit"
	case ShadingLit:
		return "lit"
	default:
		return fmt.Sprintf("Shading(%d)", uint8(s))
	}
}

// Blending is how a material's output combines with the target.
type Blending uint8

// Blending modes.
const (
	BlendOpaque Blending = iota
	BlendTransparent
)

func (b Blending) String() string {
	switch b {
	case BlendOpaque:
		return "opaque"
	case BlendTransparent:
		return "transparent"
	default:
		return fmt.Sprintf("Blending(%d)", uint8(b))
	}
}

// ParseShading returns the shading model named s ("unlit" or "lit").
func ParseShading(s string) (Shading, error) {
	for _, v := range []Shading{ShadingUnlit, ShadingLit} {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("material: unknown shading %q", s)
}

// ParseBlending returns the blending mode named s ("opaque" or "transparent").
func ParseBlending(s string) (Blending, error) {
	for _, v := range []Blending{BlendOpaque, BlendTransparent} {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("material: unknown blending %q", s)
}

// Package is a decoded material package.
type Package struct {
	Name       string
	Shading    Shading
	Blending   Blending
	Attributes uint32
	WGSL       string
	SPIRV      []uint32
}

// AttributeMask returns the mask bit for a.
func AttributeMask(a engine.VertexAttribute) uint32 {
	return 1 << uint32(a)
}

// Require marks a as a required vertex attribute.
func (p *Package) Require(a engine.VertexAttribute) {
	p.Attributes |= AttributeMask(a)
}

// Requires reports whether the material reads vertex attribute a.
func (p *Package) Requires(a engine.VertexAttribute) bool {
	return p.Attributes&AttributeMask(a) != 0
}

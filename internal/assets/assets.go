// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package assets embeds the precompiled materials shipped with the binary.
//
// bakedcolor.gmat is produced from bakedcolor.wgsl by:
//
//	go run ./cmd/matc -name bakedColor -attr position,color -spirv=false \
//		-o internal/assets/bakedcolor.gmat internal/assets/bakedcolor.wgsl
package assets

import _ "embed"

// BakedColor is the unlit material that outputs interpolated vertex colors.
//
//go:embed bakedcolor.gmat
var BakedColor []byte

// BakedColorWGSL is the shader source BakedColor was compiled from.
//
//go:embed bakedcolor.wgsl
var BakedColorWGSL string

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command matc compiles a WGSL shader into a material package.
//
// Usage:
//
//	matc -name bakedColor -attr position,color -o out.gmat shader.wgsl
//
// With -spirv=false the shader is not translated and the package carries
// the WGSL source only, which is all the software engine needs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/material"
)

func main() {
	var (
		name       = flag.String("name", "", "material name (default: input file name)")
		attrs      = flag.String("attr", "position", "comma-separated required vertex attributes")
		shading    = flag.String("shading", "unlit", "shading model: unlit or lit")
		blending   = flag.String("blend", "opaque", "blending mode: opaque or transparent")
		spirv      = flag.Bool("spirv", true, "translate the shader to SPIR-V")
		keepSource = flag.Bool("keep-source", false, "embed the WGSL source next to SPIR-V")
		output     = flag.String("o", "", "output file (default: input with .gmat extension)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: matc [flags] shader.wgsl")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	src, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("Failed to read shader: %v", err)
	}

	s := material.Source{
		Name:       *name,
		WGSL:       string(src),
		KeepSource: *keepSource,
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(input), ".wgsl")
	}
	if s.Shading, err = material.ParseShading(*shading); err != nil {
		log.Fatal(err)
	}
	if s.Blending, err = material.ParseBlending(*blending); err != nil {
		log.Fatal(err)
	}
	if s.Attributes, err = parseAttributes(*attrs); err != nil {
		log.Fatal(err)
	}

	pkg, err := build(s, *spirv)
	if err != nil {
		log.Fatalf("Failed to compile: %v", err)
	}
	data, err := material.Encode(pkg)
	if err != nil {
		log.Fatalf("Failed to encode: %v", err)
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, ".wgsl") + ".gmat"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatalf("Failed to write: %v", err)
	}
	log.Printf("Material %s saved to %s (%d bytes)\n", pkg.Name, out, len(data))
}

// build compiles s, or packages the WGSL source as-is when spirv is false.
func build(s material.Source, spirv bool) (*material.Package, error) {
	if spirv {
		return material.Compile(s)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("empty material name")
	}
	p := &material.Package{
		Name:     s.Name,
		Shading:  s.Shading,
		Blending: s.Blending,
		WGSL:     s.WGSL,
	}
	for _, a := range s.Attributes {
		p.Require(a)
	}
	return p, nil
}

func parseAttributes(list string) ([]engine.VertexAttribute, error) {
	var attrs []engine.VertexAttribute
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		a, err := engine.ParseVertexAttribute(f)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package material

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	tagName  = "NAME"
	tagShade = "SHAD"
	tagBlend = "BLND"
	tagAttr  = "ATTR"
	tagWGSL  = "WGSL"
	tagSPIRV = "SPRV"
	tagEnd   = "END "

	headerSize  = 8
	sectionHead = 8
)

// Decode parses a material package. The returned Package does not alias data.
func Decode(data []byte) (*Package, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v == 0 || v > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	var (
		p    Package
		seen = make(map[string]bool)
		rest = data[headerSize:]
	)
	for {
		if len(rest) < sectionHead {
			return nil, ErrTruncated
		}
		tag := string(rest[:4])
		n := binary.LittleEndian.Uint32(rest[4:8])
		rest = rest[sectionHead:]
		if uint64(n) > uint64(len(rest)) {
			return nil, &SectionError{Tag: tag, Err: ErrTruncated}
		}
		payload := rest[:n]
		rest = rest[n:]

		if tag == tagEnd {
			break
		}
		if err := p.decodeSection(tag, payload); err != nil {
			return nil, &SectionError{Tag: tag, Err: err}
		}
		seen[tag] = true
	}

	for _, tag := range []string{tagName, tagShade, tagAttr} {
		if !seen[tag] {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, tag)
		}
	}
	return &p, nil
}

func (p *Package) decodeSection(tag string, payload []byte) error {
	switch tag {
	case tagName:
		if len(payload) == 0 {
			return fmt.Errorf("empty name")
		}
		p.Name = string(payload)
	case tagShade:
		if len(payload) != 1 {
			return fmt.Errorf("want 1 byte, got %d", len(payload))
		}
		p.Shading = Shading(payload[0])
	case tagBlend:
		if len(payload) != 1 {
			return fmt.Errorf("want 1 byte, got %d", len(payload))
		}
		p.Blending = Blending(payload[0])
	case tagAttr:
		if len(payload) != 4 {
			return fmt.Errorf("want 4 bytes, got %d", len(payload))
		}
		p.Attributes = binary.LittleEndian.Uint32(payload)
	case tagWGSL:
		p.WGSL = string(payload)
	case tagSPIRV:
		words, err := spirvWords(payload)
		if err != nil {
			return err
		}
		p.SPIRV = words
	}
	return nil
}

// spirvWords converts little-endian SPIR-V bytes to words and checks the magic.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b) < 4 || len(b)%4 != 0 {
		return nil, ErrInvalidSPIRV
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, ErrInvalidSPIRV
	}
	return words, nil
}

// Encode serializes p in the current format version.
func Encode(p *Package) ([]byte, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingSection, tagName)
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	_ = binary.Write(&buf, binary.LittleEndian, uint16(Version))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(0))

	writeSection(&buf, tagName, []byte(p.Name))
	writeSection(&buf, tagShade, []byte{byte(p.Shading)})
	writeSection(&buf, tagBlend, []byte{byte(p.Blending)})
	attr := binary.LittleEndian.AppendUint32(nil, p.Attributes)
	writeSection(&buf, tagAttr, attr)
	if p.WGSL != "" {
		writeSection(&buf, tagWGSL, []byte(p.WGSL))
	}
	if len(p.SPIRV) > 0 {
		if p.SPIRV[0] != spirvMagic {
			return nil, ErrInvalidSPIRV
		}
		code := make([]byte, 0, len(p.SPIRV)*4)
		for _, w := range p.SPIRV {
			code = binary.LittleEndian.AppendUint32(code, w)
		}
		writeSection(&buf, tagSPIRV, code)
	}
	writeSection(&buf, tagEnd, nil)
	return buf.Bytes(), nil
}

func writeSection(buf *bytes.Buffer, tag string, payload []byte) {
	buf.WriteString(tag)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"fmt"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/material"
	"github.com/gogpu/nativesurface/native"
)

const topologyTriangles = gputypes.PrimitiveTopologyTriangleList

var defaultClear = gputypes.Color{R: 0, G: 0, B: 0, A: 1}

// requiredAttributes are the attributes the rasterizer knows how to read.
var requiredAttributes = []engine.VertexAttribute{
	engine.AttributePosition,
	engine.AttributeColor,
}

// object is implemented by everything in the engine's object table.
type object interface {
	engine.Object
	core() *base
}

type base struct {
	eng       *Engine
	kind      engine.Kind
	id        uint64
	destroyed bool
}

func (b *base) core() *base       { return b }
func (b *base) Kind() engine.Kind { return b.kind }

func (b *base) String() string {
	return fmt.Sprintf("%v#%d", b.kind, b.id)
}

// alive reports whether the object is still in the table.
func (b *base) alive() bool {
	b.eng.mu.Lock()
	defer b.eng.mu.Unlock()
	return !b.destroyed
}

type swapChain struct {
	base
	window native.Handle

	// dc is only touched by the worker.
	dc *gg.Context
}

func (s *swapChain) Window() native.Handle          { return s.window }
func (s *swapChain) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

type camera struct {
	base
	mu   sync.Mutex
	proj engine.Projection
	view math32.Matrix4
}

func newCamera() *camera {
	c := &camera{base: base{kind: engine.KindCamera}}
	c.view.SetIdentity()
	return c
}

func (c *camera) LookAt(eye, target, up math32.Vector3) {
	m := engine.LookAtMatrix(eye, target, up)
	c.mu.Lock()
	c.view = m
	c.mu.Unlock()
}

func (c *camera) SetProjection(p engine.Projection) {
	c.mu.Lock()
	c.proj = p
	c.mu.Unlock()
}

func (c *camera) Projection() engine.Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proj
}

func (c *camera) ViewMatrix() math32.Matrix4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

type view struct {
	base
	camera       *camera
	scene        *scene
	viewport     engine.Viewport
	clear        gputypes.Color
	postFX       bool
	depthPrepass engine.DepthPrepass
}

func (v *view) SetCamera(c engine.Camera) {
	cam, ok := c.(*camera)
	if c != nil && (!ok || cam.eng != v.eng) {
		v.eng.log.Warn("view: foreign camera ignored")
		return
	}
	v.camera = cam
}

func (v *view) SetScene(s engine.Scene) {
	sc, ok := s.(*scene)
	if s != nil && (!ok || sc.eng != v.eng) {
		v.eng.log.Warn("view: foreign scene ignored")
		return
	}
	v.scene = sc
}

func (v *view) SetViewport(vp engine.Viewport)           { v.viewport = vp }
func (v *view) Viewport() engine.Viewport                { return v.viewport }
func (v *view) SetClearColor(c gputypes.Color)           { v.clear = c }
func (v *view) SetPostProcessingEnabled(enabled bool)    { v.postFX = enabled }
func (v *view) SetDepthPrepass(mode engine.DepthPrepass) { v.depthPrepass = mode }
func (v *view) ClearColor() gputypes.Color               { return v.clear }
func (v *view) PostProcessingEnabled() bool              { return v.postFX }
func (v *view) DepthPrepass() engine.DepthPrepass        { return v.depthPrepass }

type scene struct {
	base
	entities []engine.Entity
}

func (s *scene) AddEntity(e engine.Entity) {
	if e.IsNull() {
		return
	}
	for _, have := range s.entities {
		if have == e {
			return
		}
	}
	s.entities = append(s.entities, e)
}

func (s *scene) RemoveEntity(e engine.Entity) {
	for i, have := range s.entities {
		if have == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			return
		}
	}
}

func (s *scene) EntityCount() int { return len(s.entities) }

type vertexBuffer struct {
	base
	desc  engine.VertexBufferDesc
	slots [][]byte
}

func (vb *vertexBuffer) VertexCount() int { return vb.desc.VertexCount }

// SetBufferAt copies data into slot. The copy replaces the previous contents
// so frames already queued keep reading the old bytes.
func (vb *vertexBuffer) SetBufferAt(slot int, data []byte) error {
	if slot < 0 || slot >= len(vb.slots) {
		return fmt.Errorf("%w: slot %d of %d", engine.ErrInvalidDescriptor, slot, len(vb.slots))
	}
	if want := vb.desc.SlotSize(slot); len(data) < want {
		return fmt.Errorf("%w: slot %d needs %d bytes, got %d", engine.ErrInvalidDescriptor, slot, want, len(data))
	}
	buf := append([]byte(nil), data...)

	vb.eng.mu.Lock()
	defer vb.eng.mu.Unlock()
	if vb.destroyed {
		return fmt.Errorf("soft: %v destroyed", &vb.base)
	}
	vb.slots[slot] = buf
	return nil
}

func (vb *vertexBuffer) attribute(a engine.VertexAttribute) *engine.AttributeDesc {
	return attributeOf(vb.desc, a)
}

type indexBuffer struct {
	base
	desc engine.IndexBufferDesc
	data []byte
}

func (ib *indexBuffer) IndexCount() int { return ib.desc.IndexCount }

func (ib *indexBuffer) SetBuffer(data []byte) error {
	if want := ib.desc.IndexCount * ib.desc.IndexSize(); len(data) < want {
		return fmt.Errorf("%w: index buffer needs %d bytes, got %d", engine.ErrInvalidDescriptor, want, len(data))
	}
	buf := append([]byte(nil), data...)

	ib.eng.mu.Lock()
	defer ib.eng.mu.Unlock()
	if ib.destroyed {
		return fmt.Errorf("soft: %v destroyed", &ib.base)
	}
	ib.data = buf
	return nil
}

type materialObject struct {
	base
	pkg      *material.Package
	instance *materialInstance
}

func newMaterial(data []byte) (*materialObject, error) {
	pkg, err := material.Decode(data)
	if err != nil {
		return nil, err
	}
	if pkg.Shading != material.ShadingUnlit {
		return nil, fmt.Errorf("%w: %s is %v", ErrUnsupportedMaterial, pkg.Name, pkg.Shading)
	}
	m := &materialObject{base: base{kind: engine.KindMaterial}, pkg: pkg}
	m.instance = &materialInstance{mat: m}
	return m, nil
}

func (m *materialObject) Name() string                             { return m.pkg.Name }
func (m *materialObject) DefaultInstance() engine.MaterialInstance { return m.instance }

type materialInstance struct {
	mat *materialObject
}

func (mi *materialInstance) Material() engine.Material { return mi.mat }

type fence struct {
	base
	once     sync.Once
	signaled chan struct{}
}

func (f *fence) signal() {
	f.once.Do(func() { close(f.signaled) })
}

func (f *fence) Wait() { <-f.signaled }

type renderable struct {
	bounds         math32.Box3
	primitives     []primitive
	culling        bool
	receiveShadows bool
	castShadows    bool
}

type primitive struct {
	vertices *vertexBuffer
	indices  *indexBuffer
	material *materialObject
	offset   int
	count    int
}

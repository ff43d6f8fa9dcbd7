// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package enginetest provides a recording engine.Engine for tests.
//
// Every create, destroy, frame and fence call is appended to an ordered
// journal so tests can assert exact lifecycles and teardown order.
package enginetest

import (
	"fmt"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/native"
)

// Engine is a recording engine.Engine. The zero value is not usable;
// call New.
type Engine struct {
	mu sync.Mutex

	journal    []string
	live       map[*Object]bool
	destroys   map[*Object]int
	entities   map[engine.Entity]bool
	entityDrop map[engine.Entity]int
	nextID     int
	nextEntity uint32
	terminated bool

	// Fail makes the create call for a kind return the given error.
	Fail map[engine.Kind]error

	// SkipFrames makes BeginFrame report a skipped frame.
	SkipFrames bool

	frames  int
	renders int
}

// New returns an empty recording engine.
func New() *Engine {
	return &Engine{
		live:       make(map[*Object]bool),
		destroys:   make(map[*Object]int),
		entities:   make(map[engine.Entity]bool),
		entityDrop: make(map[engine.Entity]int),
		Fail:       make(map[engine.Kind]error),
	}
}

func (e *Engine) record(format string, args ...any) {
	e.journal = append(e.journal, fmt.Sprintf(format, args...))
}

func (e *Engine) create(kind engine.Kind) (*Object, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.terminated {
		return nil, engine.ErrTerminated
	}
	if err := e.Fail[kind]; err != nil {
		e.record("fail %v", kind)
		return nil, err
	}
	e.nextID++
	o := &Object{kind: kind, id: e.nextID, eng: e}
	e.live[o] = true
	e.record("create %v", o)
	return o, nil
}

// CreateSwapChain implements engine.Engine.
func (e *Engine) CreateSwapChain(window native.Handle) (engine.SwapChain, error) {
	o, err := e.create(engine.KindSwapChain)
	if err != nil {
		return nil, err
	}
	o.window = window
	return o, nil
}

// CreateRenderer implements engine.Engine.
func (e *Engine) CreateRenderer() (engine.Renderer, error) {
	return as[engine.Renderer](e.create(engine.KindRenderer))
}

// CreateCamera implements engine.Engine.
func (e *Engine) CreateCamera() (engine.Camera, error) {
	return as[engine.Camera](e.create(engine.KindCamera))
}

// CreateView implements engine.Engine.
func (e *Engine) CreateView() (engine.View, error) {
	return as[engine.View](e.create(engine.KindView))
}

// CreateScene implements engine.Engine.
func (e *Engine) CreateScene() (engine.Scene, error) {
	return as[engine.Scene](e.create(engine.KindScene))
}

// CreateVertexBuffer implements engine.Engine.
func (e *Engine) CreateVertexBuffer(desc engine.VertexBufferDesc) (engine.VertexBuffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	o, err := e.create(engine.KindVertexBuffer)
	if err != nil {
		return nil, err
	}
	o.count = desc.VertexCount
	return o, nil
}

// CreateIndexBuffer implements engine.Engine.
func (e *Engine) CreateIndexBuffer(desc engine.IndexBufferDesc) (engine.IndexBuffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	o, err := e.create(engine.KindIndexBuffer)
	if err != nil {
		return nil, err
	}
	o.count = desc.IndexCount
	return o, nil
}

// CreateMaterial implements engine.Engine.
func (e *Engine) CreateMaterial(pkg []byte) (engine.Material, error) {
	o, err := e.create(engine.KindMaterial)
	if err != nil {
		return nil, err
	}
	o.bytes = len(pkg)
	return o, nil
}

// CreateFence implements engine.Engine.
func (e *Engine) CreateFence() (engine.Fence, error) {
	return as[engine.Fence](e.create(engine.KindFence))
}

// as converts a created object to the requested interface without wrapping
// a nil pointer in a non-nil interface.
func as[T any](o *Object, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	return any(o).(T), nil
}

// CreateEntity implements engine.Engine.
func (e *Engine) CreateEntity() engine.Entity {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextEntity++
	ent := engine.NewEntity(e.nextEntity, 1)
	e.entities[ent] = true
	e.record("create %v", ent)
	return ent
}

// BuildRenderable implements engine.Engine.
func (e *Engine) BuildRenderable(ent engine.Entity, desc engine.RenderableDesc) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.entities[ent] {
		return engine.ErrDeadEntity
	}
	e.record("build %v", ent)
	return nil
}

// Destroy implements engine.Engine.
func (e *Engine) Destroy(obj engine.Object) {
	o, ok := obj.(*Object)
	if !ok || o == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.destroys[o]++
	delete(e.live, o)
	e.record("destroy %v", o)
}

// DestroyEntity implements engine.Engine.
func (e *Engine) DestroyEntity(ent engine.Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entityDrop[ent]++
	delete(e.entities, ent)
	e.record("destroy %v", ent)
}

// Terminate implements engine.Engine.
func (e *Engine) Terminate() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.terminated = true
	e.record("terminate")
}

// Journal returns a copy of the recorded calls in order.
func (e *Engine) Journal() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.journal...)
}

// Destroys returns how many times obj was destroyed.
func (e *Engine) Destroys(obj engine.Object) int {
	o, _ := obj.(*Object)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroys[o]
}

// EntityDestroys returns how many times ent was destroyed.
func (e *Engine) EntityDestroys(ent engine.Entity) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.entityDrop[ent]
}

// Live returns the number of objects created and not yet destroyed.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

// LiveEntities returns the number of entities not yet destroyed.
func (e *Engine) LiveEntities() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entities)
}

// Terminated reports whether Terminate was called.
func (e *Engine) Terminated() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.terminated
}

// Frames returns the number of frames begun and not skipped.
func (e *Engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Renders returns the number of Render calls.
func (e *Engine) Renders() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renders
}

// Object is the single recording type behind every engine interface.
type Object struct {
	kind engine.Kind
	id   int
	eng  *Engine

	window     native.Handle
	count      int
	bytes      int
	projection engine.Projection
	viewMatrix math32.Matrix4
	viewport   engine.Viewport
	camera     engine.Camera
	scene      engine.Scene
	clear      gputypes.Color
	postFX     bool
	prepass    engine.DepthPrepass
	entities   map[engine.Entity]bool
}

func (o *Object) String() string {
	return fmt.Sprintf("%v#%d", o.kind, o.id)
}

// Kind implements engine.Object.
func (o *Object) Kind() engine.Kind { return o.kind }

// Window implements engine.SwapChain.
func (o *Object) Window() native.Handle { return o.window }

// Format implements engine.SwapChain.
func (o *Object) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// BeginFrame implements engine.Renderer.
func (o *Object) BeginFrame(sc engine.SwapChain) bool {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()
	if o.eng.SkipFrames || sc == nil {
		o.eng.record("skip frame")
		return false
	}
	o.eng.frames++
	o.eng.record("begin frame")
	return true
}

// Render implements engine.Renderer.
func (o *Object) Render(v engine.View) {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()
	o.eng.renders++
	o.eng.record("render %v", v)
}

// EndFrame implements engine.Renderer.
func (o *Object) EndFrame() {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()
	o.eng.record("end frame")
}

// LookAt implements engine.Camera.
func (o *Object) LookAt(eye, target, up math32.Vector3) {
	o.viewMatrix = engine.LookAtMatrix(eye, target, up)
}

// SetProjection implements engine.Camera.
func (o *Object) SetProjection(p engine.Projection) { o.projection = p }

// Projection implements engine.Camera.
func (o *Object) Projection() engine.Projection { return o.projection }

// ViewMatrix implements engine.Camera.
func (o *Object) ViewMatrix() math32.Matrix4 { return o.viewMatrix }

// SetCamera implements engine.View.
func (o *Object) SetCamera(c engine.Camera) { o.camera = c }

// SetScene implements engine.View.
func (o *Object) SetScene(s engine.Scene) { o.scene = s }

// SetViewport implements engine.View.
func (o *Object) SetViewport(vp engine.Viewport) { o.viewport = vp }

// Viewport implements engine.View.
func (o *Object) Viewport() engine.Viewport { return o.viewport }

// SetClearColor implements engine.View.
func (o *Object) SetClearColor(c gputypes.Color) { o.clear = c }

// ClearColor returns the color set with SetClearColor.
func (o *Object) ClearColor() gputypes.Color { return o.clear }

// SetPostProcessingEnabled implements engine.View.
func (o *Object) SetPostProcessingEnabled(enabled bool) { o.postFX = enabled }

// PostProcessingEnabled returns the post-processing flag.
func (o *Object) PostProcessingEnabled() bool { return o.postFX }

// SetDepthPrepass implements engine.View.
func (o *Object) SetDepthPrepass(mode engine.DepthPrepass) { o.prepass = mode }

// DepthPrepass returns the depth prepass mode.
func (o *Object) DepthPrepass() engine.DepthPrepass { return o.prepass }

// AttachedCamera returns the camera set on a view.
func (o *Object) AttachedCamera() engine.Camera { return o.camera }

// AttachedScene returns the scene set on a view.
func (o *Object) AttachedScene() engine.Scene { return o.scene }

// AddEntity implements engine.Scene.
func (o *Object) AddEntity(ent engine.Entity) {
	if o.entities == nil {
		o.entities = make(map[engine.Entity]bool)
	}
	o.entities[ent] = true
}

// RemoveEntity implements engine.Scene.
func (o *Object) RemoveEntity(ent engine.Entity) { delete(o.entities, ent) }

// EntityCount implements engine.Scene.
func (o *Object) EntityCount() int { return len(o.entities) }

// VertexCount implements engine.VertexBuffer.
func (o *Object) VertexCount() int { return o.count }

// SetBufferAt implements engine.VertexBuffer.
func (o *Object) SetBufferAt(int, []byte) error { return nil }

// IndexCount implements engine.IndexBuffer.
func (o *Object) IndexCount() int { return o.count }

// SetBuffer implements engine.IndexBuffer.
func (o *Object) SetBuffer([]byte) error { return nil }

// Name implements engine.Material.
func (o *Object) Name() string { return o.String() }

// DefaultInstance implements engine.Material.
func (o *Object) DefaultInstance() engine.MaterialInstance { return o }

// Material implements engine.MaterialInstance.
func (o *Object) Material() engine.Material { return o }

// Wait implements engine.Fence.
func (o *Object) Wait() {
	o.eng.mu.Lock()
	defer o.eng.mu.Unlock()
	o.eng.record("fence wait %v", o)
}

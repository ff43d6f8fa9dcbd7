// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package soft is a CPU implementation of engine.Engine.
//
// Objects are created and destroyed on the caller's goroutine. Frames are
// recorded on the caller's goroutine too, but executed later on a worker
// goroutine that plays the role of the GPU: it rasterizes with gg and hands
// the result to the window's native.Presenter. A fence is a command on the
// same queue, so waiting on it means every earlier frame has been presented.
//
// Destroying an object that a queued frame still references is a programming
// error. The worker detects it, skips the affected draw, logs a warning and
// counts it in Stats.UseAfterDestroy.
package soft

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/nativesurface"
	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/native"
)

// ErrUnknownWindow is returned when a swap chain is requested for a handle
// the registry does not know.
var ErrUnknownWindow = errors.New("soft: unknown native window")

// ErrUnsupportedMaterial is returned for materials this engine cannot shade.
var ErrUnsupportedMaterial = errors.New("soft: unsupported material")

// Default settings.
const (
	DefaultQueueDepth = 3
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	queueDepth int
	clock      func() time.Time
	registry   *native.Registry
}

// WithQueueDepth sets how many commands may be queued before submission blocks.
func WithQueueDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueDepth = n
		}
	}
}

// WithClock sets the time source used to stamp presented frames.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithRegistry resolves native handles in r instead of the global registry.
func WithRegistry(r *native.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// Stats is a snapshot of engine counters.
type Stats struct {
	FramesSubmitted int
	FramesPresented int
	FramesSkipped   int
	PresentErrors   int
	UseAfterDestroy int
	LiveObjects     int
	LiveEntities    int
	LastPresent     time.Time
}

// Engine is a software rendering engine. Create one with New.
type Engine struct {
	opts options
	log  *slog.Logger

	// mu guards the object table, entity slots, counters and the destroyed
	// flag of every object. The worker takes it to resolve frame inputs.
	mu         sync.Mutex
	objects    map[uint64]object
	nextID     uint64
	entities   entityTable
	stats      Stats
	terminated bool

	// qmu serializes submission against closing the queue.
	qmu     sync.Mutex
	queue   chan command
	closed  bool
	done    chan struct{}
	termOne sync.Once
}

type command func()

// New creates an engine and starts its worker.
func New(opts ...Option) *Engine {
	o := options{
		queueDepth: DefaultQueueDepth,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		opts:    o,
		log:     nativesurface.LoggerFor("soft"),
		objects: make(map[uint64]object),
		queue:   make(chan command, o.queueDepth),
		done:    make(chan struct{}),
	}
	go e.run()

	e.log.Info("engine created", slog.Int("queue_depth", o.queueDepth))
	return e
}

func (e *Engine) run() {
	defer close(e.done)
	for cmd := range e.queue {
		cmd()
	}
}

// submit queues cmd for the worker. It reports false after Terminate.
func (e *Engine) submit(cmd command) bool {
	e.qmu.Lock()
	defer e.qmu.Unlock()

	if e.closed {
		return false
	}
	e.queue <- cmd
	return true
}

func (e *Engine) lookup(h native.Handle) (native.Presenter, error) {
	if e.opts.registry != nil {
		return e.opts.registry.Lookup(h)
	}
	return native.Lookup(h)
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.stats
	s.LiveObjects = len(e.objects)
	s.LiveEntities = e.entities.live()
	return s
}

// register adds o to the object table. It fails after Terminate.
func (e *Engine) register(o object) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.terminated {
		return engine.ErrTerminated
	}
	e.nextID++
	b := o.core()
	b.eng = e
	b.id = e.nextID
	e.objects[b.id] = o
	return nil
}

// own returns the base of obj if it was created by e and is still alive.
// Caller must hold e.mu.
func (e *Engine) own(obj engine.Object) (*base, error) {
	o, ok := obj.(object)
	if !ok || o.core().eng != e {
		return nil, engine.ErrForeignObject
	}
	b := o.core()
	if b.destroyed {
		return nil, fmt.Errorf("soft: %v#%d already destroyed", b.kind, b.id)
	}
	return b, nil
}

// CreateSwapChain implements engine.Engine.
func (e *Engine) CreateSwapChain(window native.Handle) (engine.SwapChain, error) {
	if _, err := e.lookup(window); err != nil {
		return nil, fmt.Errorf("%w %v: %w", ErrUnknownWindow, window, err)
	}
	sc := &swapChain{base: base{kind: engine.KindSwapChain}, window: window}
	if err := e.register(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// CreateRenderer implements engine.Engine.
func (e *Engine) CreateRenderer() (engine.Renderer, error) {
	r := &renderer{base: base{kind: engine.KindRenderer}}
	if err := e.register(r); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateCamera implements engine.Engine.
func (e *Engine) CreateCamera() (engine.Camera, error) {
	c := newCamera()
	if err := e.register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateView implements engine.Engine.
func (e *Engine) CreateView() (engine.View, error) {
	v := &view{base: base{kind: engine.KindView}, clear: defaultClear}
	if err := e.register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// CreateScene implements engine.Engine.
func (e *Engine) CreateScene() (engine.Scene, error) {
	s := &scene{base: base{kind: engine.KindScene}}
	if err := e.register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateVertexBuffer implements engine.Engine.
func (e *Engine) CreateVertexBuffer(desc engine.VertexBufferDesc) (engine.VertexBuffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	vb := &vertexBuffer{
		base:  base{kind: engine.KindVertexBuffer},
		desc:  desc,
		slots: make([][]byte, desc.BufferCount),
	}
	if err := e.register(vb); err != nil {
		return nil, err
	}
	return vb, nil
}

// CreateIndexBuffer implements engine.Engine.
func (e *Engine) CreateIndexBuffer(desc engine.IndexBufferDesc) (engine.IndexBuffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	ib := &indexBuffer{base: base{kind: engine.KindIndexBuffer}, desc: desc}
	if err := e.register(ib); err != nil {
		return nil, err
	}
	return ib, nil
}

// CreateMaterial implements engine.Engine.
// The package must be an unlit material; SPIR-V is not executed.
func (e *Engine) CreateMaterial(pkg []byte) (engine.Material, error) {
	m, err := newMaterial(pkg)
	if err != nil {
		return nil, err
	}
	if err := e.register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateFence implements engine.Engine.
func (e *Engine) CreateFence() (engine.Fence, error) {
	f := &fence{base: base{kind: engine.KindFence}, signaled: make(chan struct{})}
	if err := e.register(f); err != nil {
		return nil, err
	}
	if !e.submit(f.signal) {
		f.signal()
	}
	return f, nil
}

// CreateEntity implements engine.Engine.
func (e *Engine) CreateEntity() engine.Entity {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.terminated {
		return engine.Entity{}
	}
	return e.entities.create()
}

// BuildRenderable implements engine.Engine.
func (e *Engine) BuildRenderable(ent engine.Entity, desc engine.RenderableDesc) error {
	if err := desc.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	slot := e.entities.get(ent)
	if slot == nil {
		return fmt.Errorf("%w: %v", engine.ErrDeadEntity, ent)
	}

	r := &renderable{
		bounds:         desc.BoundingBox,
		culling:        desc.Culling,
		receiveShadows: desc.ReceiveShadows,
		castShadows:    desc.CastShadows,
	}
	for i, p := range desc.Primitives {
		prim, err := e.resolvePrimitive(p)
		if err != nil {
			return fmt.Errorf("soft: primitive %d: %w", i, err)
		}
		r.primitives = append(r.primitives, prim)
	}
	slot.renderable = r
	return nil
}

// resolvePrimitive checks p against this engine's objects.
// Caller must hold e.mu.
func (e *Engine) resolvePrimitive(p engine.Primitive) (primitive, error) {
	if p.Topology != topologyTriangles {
		return primitive{}, fmt.Errorf("%w: topology %v", engine.ErrInvalidDescriptor, p.Topology)
	}
	if _, err := e.own(p.Vertices); err != nil {
		return primitive{}, err
	}
	if _, err := e.own(p.Indices); err != nil {
		return primitive{}, err
	}
	inst, ok := p.Material.(*materialInstance)
	if !ok {
		return primitive{}, engine.ErrForeignObject
	}
	if _, err := e.own(inst.mat); err != nil {
		return primitive{}, err
	}

	vb := p.Vertices.(*vertexBuffer)
	for _, attr := range requiredAttributes {
		if inst.mat.pkg.Requires(attr) && vb.attribute(attr) == nil {
			return primitive{}, fmt.Errorf("%w: material %s reads %v, vertex buffer has none",
				engine.ErrInvalidDescriptor, inst.mat.pkg.Name, attr)
		}
	}

	return primitive{
		vertices: vb,
		indices:  p.Indices.(*indexBuffer),
		material: inst.mat,
		offset:   p.Offset,
		count:    p.Count,
	}, nil
}

// Destroy implements engine.Engine.
func (e *Engine) Destroy(obj engine.Object) {
	if obj == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.own(obj)
	if err != nil {
		e.log.Warn("destroy ignored", slog.Any("object", obj.Kind()), slog.Any("error", err))
		return
	}
	b.destroyed = true
	delete(e.objects, b.id)
}

// DestroyEntity implements engine.Engine.
func (e *Engine) DestroyEntity(ent engine.Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.entities.destroy(ent) {
		e.log.Warn("destroy of dead entity ignored", slog.String("entity", ent.String()))
	}
}

// Terminate implements engine.Engine. It drains the queue before returning.
func (e *Engine) Terminate() {
	e.termOne.Do(func() {
		e.mu.Lock()
		e.terminated = true
		e.mu.Unlock()

		e.qmu.Lock()
		e.closed = true
		close(e.queue)
		e.qmu.Unlock()

		<-e.done

		s := e.Stats()
		e.log.Info("engine terminated",
			slog.Int("frames", s.FramesPresented),
			slog.Int("leaked_objects", s.LiveObjects),
			slog.Int("leaked_entities", s.LiveEntities))
	})
}

var _ engine.Engine = (*Engine)(nil)

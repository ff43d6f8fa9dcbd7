// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package engine defines the boundary between a native surface and the
// rendering engine drawing into it.
//
// An Engine creates every GPU-side object a surface needs (swap chain,
// renderer, camera, view, scene, buffers, material, renderable entities) and
// is the only party allowed to destroy them. Objects never destroy
// themselves: callers hand them back through [Engine.Destroy] or
// [Engine.DestroyEntity], usually via the owners in package scoped.
//
// Engines are shared. [Share] roots a reference count, every owner holds its
// own [Ref], and the engine terminates when the last Ref is released.
// Termination waits for all submitted work to complete.
package engine

import (
	"errors"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/nativesurface/native"
)

// Errors returned by engines.
var (
	// ErrTerminated is returned by create calls after Terminate.
	ErrTerminated = errors.New("engine: terminated")

	// ErrInvalidDescriptor is returned when a buffer or renderable descriptor is malformed.
	ErrInvalidDescriptor = errors.New("engine: invalid descriptor")

	// ErrForeignObject is returned when an object created by another engine is passed in.
	ErrForeignObject = errors.New("engine: object belongs to another engine")

	// ErrDeadEntity is returned when a destroyed or unknown entity is used.
	ErrDeadEntity = errors.New("engine: dead entity")
)

// Kind identifies the type of an engine object.
type Kind uint8

// Object kinds.
const (
	KindSwapChain Kind = iota + 1
	KindRenderer
	KindCamera
	KindView
	KindScene
	KindVertexBuffer
	KindIndexBuffer
	KindMaterial
	KindFence
)

var kindNames = [...]string{
	KindSwapChain:    "SwapChain",
	KindRenderer:     "Renderer",
	KindCamera:       "Camera",
	KindView:         "View",
	KindScene:        "Scene",
	KindVertexBuffer: "VertexBuffer",
	KindIndexBuffer:  "IndexBuffer",
	KindMaterial:     "Material",
	KindFence:        "Fence",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// Object is anything an Engine creates and later destroys.
type Object interface {
	Kind() Kind
}

// SwapChain is the presentable target bound to one native window.
type SwapChain interface {
	Object
	Window() native.Handle
	Format() gputypes.TextureFormat
}

// Renderer submits frames.
type Renderer interface {
	Object

	// BeginFrame prepares a frame for sc. It returns false when the frame
	// must be skipped (the window cannot take a frame right now); callers
	// then submit nothing for this cycle.
	BeginFrame(sc SwapChain) bool

	// Render records v into the current frame.
	Render(v View)

	// EndFrame submits the frame for presentation.
	EndFrame()
}

// Camera holds the view and projection transforms.
type Camera interface {
	Object
	LookAt(eye, target, up math32.Vector3)
	SetProjection(p Projection)
	Projection() Projection
	ViewMatrix() math32.Matrix4
}

// View ties a camera and a scene to a viewport.
type View interface {
	Object
	SetCamera(c Camera)
	SetScene(s Scene)
	SetViewport(vp Viewport)
	Viewport() Viewport
	SetClearColor(c gputypes.Color)
	SetPostProcessingEnabled(enabled bool)
	SetDepthPrepass(mode DepthPrepass)
}

// Scene is the set of entities a view renders.
type Scene interface {
	Object
	AddEntity(e Entity)
	RemoveEntity(e Entity)
	EntityCount() int
}

// VertexBuffer holds vertex data in one or more buffer slots.
type VertexBuffer interface {
	Object
	VertexCount() int
	SetBufferAt(slot int, data []byte) error
}

// IndexBuffer holds primitive indices.
type IndexBuffer interface {
	Object
	IndexCount() int
	SetBuffer(data []byte) error
}

// Material is a compiled shading program.
type Material interface {
	Object
	Name() string
	DefaultInstance() MaterialInstance
}

// MaterialInstance is a parameter set for a Material.
// Instances returned by DefaultInstance are owned by their material.
type MaterialInstance interface {
	Material() Material
}

// Fence marks a point in the engine's command stream.
type Fence interface {
	Object

	// Wait blocks until every command submitted before the fence has completed.
	Wait()
}

// Engine is a long-lived rendering context.
//
// Create and Destroy calls must come from one goroutine (the toolkit's event
// loop). Rendering work may run elsewhere; a Fence observes its completion.
type Engine interface {
	CreateSwapChain(window native.Handle) (SwapChain, error)
	CreateRenderer() (Renderer, error)
	CreateCamera() (Camera, error)
	CreateView() (View, error)
	CreateScene() (Scene, error)
	CreateVertexBuffer(desc VertexBufferDesc) (VertexBuffer, error)
	CreateIndexBuffer(desc IndexBufferDesc) (IndexBuffer, error)
	CreateMaterial(pkg []byte) (Material, error)
	CreateFence() (Fence, error)

	// CreateEntity allocates an empty entity id.
	CreateEntity() Entity

	// BuildRenderable attaches geometry and material to e.
	BuildRenderable(e Entity, desc RenderableDesc) error

	// Destroy releases obj. Destroying an object twice or destroying an
	// object of another engine is a programming error and is ignored.
	Destroy(obj Object)

	// DestroyEntity releases e and any renderable attached to it.
	DestroyEntity(e Entity)

	// Terminate waits for outstanding work and releases the engine.
	// Use Ref.Release rather than calling this directly.
	Terminate()
}

// WaitIdle blocks until all work submitted to e so far has completed.
// It creates a fence, waits on it and destroys it.
func WaitIdle(e Engine) error {
	f, err := e.CreateFence()
	if err != nil {
		return err
	}
	f.Wait()
	e.Destroy(f)
	return nil
}

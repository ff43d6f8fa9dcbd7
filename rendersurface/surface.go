// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rendersurface draws a colored triangle into a toolkit widget.
//
// A RenderSurface owns an engine share and every engine object it creates.
// Renderer, camera, view and scene exist from construction; the swap chain,
// geometry, material and renderable entity are built when the widget first
// hands over its native window. Shutdown waits for the engine to finish
// queued frames before anything is destroyed.
package rendersurface

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/nativesurface"
	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/internal/assets"
	"github.com/gogpu/nativesurface/native"
	"github.com/gogpu/nativesurface/scoped"
	"github.com/gogpu/nativesurface/toolkit"
	"github.com/gogpu/nativesurface/widget"
)

// Zoom is the half height of the visible world region.
const Zoom = 1.5

// ClearColor is the background of every frame.
var ClearColor = gputypes.Color{R: 0.1, G: 0.125, B: 0.25, A: 1.0}

// ErrNoEngine is returned when New is given an invalid engine share.
var ErrNoEngine = errors.New("rendersurface: no engine")

// Option configures a RenderSurface.
type Option func(*RenderSurface)

// WithMaterial replaces the embedded material package.
func WithMaterial(pkg []byte) Option {
	return func(rs *RenderSurface) {
		rs.materialPkg = pkg
	}
}

// WithZoom overrides Zoom.
func WithZoom(zoom float64) Option {
	return func(rs *RenderSurface) {
		if zoom > 0 {
			rs.zoom = zoom
		}
	}
}

// RenderSurface is a widget whose window is drawn by an engine.
type RenderSurface struct {
	tk      *toolkit.Widget
	surface *widget.Surface
	ref     *engine.Ref
	log     *slog.Logger

	zoom        float64
	materialPkg []byte

	renderer *scoped.Resource[engine.Renderer]
	camera   *scoped.Resource[engine.Camera]
	view     *scoped.Resource[engine.View]
	scene    *scoped.Resource[engine.Scene]

	swapChain    *scoped.Resource[engine.SwapChain]
	vertices     *scoped.Resource[engine.VertexBuffer]
	indices      *scoped.Resource[engine.IndexBuffer]
	material     *scoped.Resource[engine.Material]
	entity       *scoped.Entity
	ready        bool
	shutdownOnce sync.Once
}

// New creates the surface for tk. It takes ownership of ref.
// On error everything created so far is destroyed and ref is released.
func New(tk *toolkit.Widget, ref *engine.Ref, opts ...Option) (*RenderSurface, error) {
	if !ref.Valid() {
		return nil, ErrNoEngine
	}

	rs := &RenderSurface{
		tk:          tk,
		ref:         ref,
		log:         nativesurface.LoggerFor("rendersurface"),
		zoom:        Zoom,
		materialPkg: assets.BakedColor,
		entity:      &scoped.Entity{},
	}
	for _, opt := range opts {
		opt(rs)
	}

	if err := rs.create(); err != nil {
		rs.closeAll()
		return nil, err
	}

	rs.surface = widget.New(tk, rs)
	tk.SetHandler(rs.surface)
	return rs, nil
}

func (rs *RenderSurface) create() error {
	eng := rs.ref.Engine()

	var err error
	if rs.renderer, err = adopt(rs.ref, eng.CreateRenderer); err != nil {
		return fmt.Errorf("rendersurface: create renderer: %w", err)
	}
	if rs.camera, err = adopt(rs.ref, eng.CreateCamera); err != nil {
		return fmt.Errorf("rendersurface: create camera: %w", err)
	}
	if rs.view, err = adopt(rs.ref, eng.CreateView); err != nil {
		return fmt.Errorf("rendersurface: create view: %w", err)
	}
	if rs.scene, err = adopt(rs.ref, eng.CreateScene); err != nil {
		return fmt.Errorf("rendersurface: create scene: %w", err)
	}
	return nil
}

// adopt runs create and wraps the result in an owner holding its own share.
func adopt[T scoped.Handle](ref *engine.Ref, create func() (T, error)) (*scoped.Resource[T], error) {
	h, err := create()
	if err != nil {
		return nil, err
	}
	return scoped.NewResource(h, ref.Clone()), nil
}

// Widget returns the toolkit-facing surface. Call its Init before showing
// the window.
func (rs *RenderSurface) Widget() *widget.Surface {
	return rs.surface
}

// Camera returns the surface camera.
func (rs *RenderSurface) Camera() engine.Camera {
	return rs.camera.Get()
}

// View returns the surface view.
func (rs *RenderSurface) View() engine.View {
	return rs.view.Get()
}

// Scene returns the surface scene.
func (rs *RenderSurface) Scene() engine.Scene {
	return rs.scene.Get()
}

// HandleEvent implements toolkit.Receiver.
func (rs *RenderSurface) HandleEvent(ev toolkit.Event) bool {
	return rs.surface.HandleEvent(ev)
}

// InitSurface implements widget.Hooks. It builds the swap chain for handle
// and the renderable triangle.
func (rs *RenderSurface) InitSurface(handle native.Handle) (err error) {
	eng := rs.ref.Engine()
	if eng == nil {
		return ErrNoEngine
	}
	defer func() {
		if err != nil {
			rs.closeInit()
		}
	}()

	sc, err := eng.CreateSwapChain(handle)
	if err != nil {
		return fmt.Errorf("rendersurface: create swap chain: %w", err)
	}
	rs.swapChain = scoped.NewResource(sc, rs.ref.Clone())

	view := rs.view.Get()
	view.SetCamera(rs.camera.Get())
	view.SetScene(rs.scene.Get())
	rs.setupCamera()
	view.SetClearColor(ClearColor)
	view.SetPostProcessingEnabled(false)
	view.SetDepthPrepass(engine.DepthPrepassDisabled)

	vb, err := eng.CreateVertexBuffer(vertexLayout)
	if err != nil {
		return fmt.Errorf("rendersurface: create vertex buffer: %w", err)
	}
	rs.vertices = scoped.NewResource(vb, rs.ref.Clone())
	if err := vb.SetBufferAt(0, vertexBytes(triangle[:])); err != nil {
		return fmt.Errorf("rendersurface: upload vertices: %w", err)
	}

	ib, err := eng.CreateIndexBuffer(indexLayout)
	if err != nil {
		return fmt.Errorf("rendersurface: create index buffer: %w", err)
	}
	rs.indices = scoped.NewResource(ib, rs.ref.Clone())
	if err := ib.SetBuffer(indexBytes(triangleIndices[:])); err != nil {
		return fmt.Errorf("rendersurface: upload indices: %w", err)
	}

	mat, err := eng.CreateMaterial(rs.materialPkg)
	if err != nil {
		return fmt.Errorf("rendersurface: create material: %w", err)
	}
	rs.material = scoped.NewResource(mat, rs.ref.Clone())

	rs.entity.SetEngine(rs.ref.Clone())
	*rs.entity.Ptr() = eng.CreateEntity()
	err = eng.BuildRenderable(rs.entity.Get(), engine.RenderableDesc{
		BoundingBox: boundingBox,
		Primitives: []engine.Primitive{{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			Vertices: vb,
			Indices:  ib,
			Offset:   0,
			Count:    indexLayout.IndexCount,
			Material: mat.DefaultInstance(),
		}},
		Culling:        false,
		ReceiveShadows: false,
		CastShadows:    false,
	})
	if err != nil {
		return fmt.Errorf("rendersurface: build renderable: %w", err)
	}
	rs.scene.Get().AddEntity(rs.entity.Get())

	rs.ready = true
	return nil
}

// ResizeSurface implements widget.Hooks.
func (rs *RenderSurface) ResizeSurface() {
	if !rs.ready {
		return
	}
	rs.setupCamera()
}

// DrawSurface implements widget.Hooks.
func (rs *RenderSurface) DrawSurface() {
	if !rs.ready {
		return
	}
	r := rs.renderer.Get()
	if !r.BeginFrame(rs.swapChain.Get()) {
		rs.log.Debug("frame skipped")
		return
	}
	r.Render(rs.view.Get())
	r.EndFrame()
}

// setupCamera fits viewport and projection to the widget geometry.
func (rs *RenderSurface) setupCamera() {
	size := rs.tk.Size()
	dpr := rs.tk.DevicePixelRatio()

	rs.view.Get().SetViewport(engine.Viewport{
		Left:   0,
		Bottom: 0,
		Width:  uint32(float64(size.X) * dpr),
		Height: uint32(float64(size.Y) * dpr),
	})

	aspect := 1.0
	if size.Y != 0 {
		aspect = float64(size.X) / float64(size.Y)
	}

	cam := rs.camera.Get()
	cam.LookAt(math32.Vec3(0, 0, 1), math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	cam.SetProjection(engine.Ortho(-aspect*rs.zoom, aspect*rs.zoom, -rs.zoom, rs.zoom, 0, 1))
}

// Shutdown waits for the engine to go idle, then destroys every owned
// object in reverse creation order and releases the engine share.
// Only the first call does anything.
func (rs *RenderSurface) Shutdown() {
	rs.shutdownOnce.Do(func() {
		if eng := rs.ref.Engine(); eng != nil {
			if err := engine.WaitIdle(eng); err != nil {
				rs.log.Warn("wait idle before shutdown", slog.Any("error", err))
			}
		}
		rs.ready = false
		rs.closeAll()
		rs.log.Info("surface shut down")
	})
}

// closeInit destroys what InitSurface created, newest first.
func (rs *RenderSurface) closeInit() {
	rs.ready = false
	if rs.entity.Valid() {
		rs.scene.Get().RemoveEntity(rs.entity.Get())
	}
	rs.entity.Close()
	rs.material.Close()
	rs.indices.Close()
	rs.vertices.Close()
	rs.swapChain.Close()
}

func (rs *RenderSurface) closeAll() {
	rs.entity.Close()
	rs.material.Close()
	rs.indices.Close()
	rs.vertices.Close()
	rs.scene.Close()
	rs.view.Close()
	rs.camera.Close()
	rs.renderer.Close()
	rs.swapChain.Close()
	rs.ref.Release()
}

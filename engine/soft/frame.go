// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"image"
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/material"
	"github.com/gogpu/nativesurface/native"
)

type renderer struct {
	base

	// open is the frame being recorded. Only the submitting goroutine uses it.
	open *frame
}

// frame is a recorded command list, executed later by the worker.
type frame struct {
	sc        *swapChain
	presenter native.Presenter
	passes    []pass
}

// pass is one Render call: a view's state captured at record time.
type pass struct {
	viewport engine.Viewport
	clear    gputypes.Color
	viewMat  math32.Matrix4
	projMat  math32.Matrix4
	draws    []primitive
}

// BeginFrame implements engine.Renderer.
func (r *renderer) BeginFrame(sc engine.SwapChain) bool {
	e := r.eng
	s, ok := sc.(*swapChain)
	if !ok || s.eng != e || !s.alive() {
		e.log.Warn("begin frame: invalid swap chain")
		return false
	}

	p, err := e.lookup(s.window)
	if err != nil || p == nil || !p.Ready() {
		e.mu.Lock()
		e.stats.FramesSkipped++
		e.mu.Unlock()
		e.log.Debug("frame skipped", slog.String("window", s.window.String()))
		return false
	}

	if r.open != nil {
		e.log.Warn("begin frame: previous frame never ended, dropping it")
	}
	r.open = &frame{sc: s, presenter: p}
	return true
}

// Render implements engine.Renderer.
func (r *renderer) Render(v engine.View) {
	e := r.eng
	if r.open == nil {
		e.log.Warn("render outside of a frame ignored")
		return
	}
	vw, ok := v.(*view)
	if !ok || vw.eng != e {
		e.log.Warn("render: foreign view ignored")
		return
	}

	p := pass{viewport: vw.viewport, clear: vw.clear}
	p.viewMat.SetIdentity()
	p.projMat.SetIdentity()
	if vw.camera != nil {
		p.viewMat = vw.camera.ViewMatrix()
		p.projMat = vw.camera.Projection().Matrix()
	}

	e.mu.Lock()
	if vw.scene != nil {
		for _, ent := range vw.scene.entities {
			slot := e.entities.get(ent)
			if slot == nil || slot.renderable == nil {
				continue
			}
			p.draws = append(p.draws, slot.renderable.primitives...)
		}
	}
	e.mu.Unlock()

	r.open.passes = append(r.open.passes, p)
}

// EndFrame implements engine.Renderer.
func (r *renderer) EndFrame() {
	e := r.eng
	f := r.open
	r.open = nil
	if f == nil {
		return
	}

	if !e.submit(func() { e.execute(f) }) {
		e.log.Debug("frame dropped after terminate")
		return
	}
	e.mu.Lock()
	e.stats.FramesSubmitted++
	e.mu.Unlock()
}

// execute runs on the worker goroutine.
func (e *Engine) execute(f *frame) {
	if !f.sc.alive() {
		e.useAfterDestroy(&f.sc.base)
		return
	}

	size := f.size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	if f.sc.dc == nil {
		f.sc.dc = gg.NewContext(size.X, size.Y)
	} else if err := f.sc.dc.Resize(size.X, size.Y); err != nil {
		e.log.Warn("resize frame", slog.Any("error", err))
		return
	}
	dc := f.sc.dc

	for i := range f.passes {
		e.executePass(dc, size, &f.passes[i])
	}

	if err := f.presenter.Present(toRGBA(dc.Image())); err != nil {
		e.log.Warn("present failed", slog.Any("error", err))
		e.mu.Lock()
		e.stats.PresentErrors++
		e.mu.Unlock()
		return
	}

	now := e.opts.clock()
	e.mu.Lock()
	e.stats.FramesPresented++
	e.stats.LastPresent = now
	e.mu.Unlock()
}

// size is the smallest target holding every pass viewport.
func (f *frame) size() image.Point {
	var pt image.Point
	for _, p := range f.passes {
		pt.X = max(pt.X, p.viewport.Left+int(p.viewport.Width))
		pt.Y = max(pt.Y, p.viewport.Bottom+int(p.viewport.Height))
	}
	return pt
}

func (e *Engine) executePass(dc *gg.Context, size image.Point, p *pass) {
	if p.viewport.Empty() {
		return
	}

	vp := p.viewport
	bg := gg.RGBA{R: float64(p.clear.R), G: float64(p.clear.G), B: float64(p.clear.B), A: float64(p.clear.A)}
	if vp.Left == 0 && vp.Bottom == 0 && int(vp.Width) == size.X && int(vp.Height) == size.Y {
		dc.ClearWithColor(bg)
	} else {
		top := float64(size.Y - vp.Bottom - int(vp.Height))
		dc.DrawRectangle(float64(vp.Left), top, float64(vp.Width), float64(vp.Height))
		dc.SetRGBA(bg.R, bg.G, bg.B, bg.A)
		_ = dc.Fill()
	}

	xf := transform{
		viewMat: &p.viewMat,
		projMat: &p.projMat,
		vp:      vp,
		height:  size.Y,
	}
	for _, prim := range p.draws {
		in, ok := e.resolveDraw(prim)
		if !ok {
			continue
		}
		for _, tri := range in.triangles(xf) {
			fillTriangle(dc, tri)
		}
	}
}

// drawInput is the data one primitive reads, captured under the table lock.
type drawInput struct {
	desc    engine.VertexBufferDesc
	slots   [][]byte
	indices []byte
	ifmt    engine.IndexBufferDesc
	offset  int
	count   int
	opaque  bool
}

// resolveDraw checks that everything prim references is still alive.
func (e *Engine) resolveDraw(prim primitive) (drawInput, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, b := range []*base{&prim.vertices.base, &prim.indices.base, &prim.material.base} {
		if b.destroyed {
			e.stats.UseAfterDestroy++
			e.log.Warn("queued frame reads destroyed object", slog.String("object", b.String()))
			return drawInput{}, false
		}
	}
	return drawInput{
		desc:    prim.vertices.desc,
		slots:   append([][]byte(nil), prim.vertices.slots...),
		indices: prim.indices.data,
		ifmt:    prim.indices.desc,
		offset:  prim.offset,
		count:   prim.count,
		opaque:  prim.material.pkg.Blending == material.BlendOpaque,
	}, true
}

func (e *Engine) useAfterDestroy(b *base) {
	e.mu.Lock()
	e.stats.UseAfterDestroy++
	e.mu.Unlock()
	e.log.Warn("queued frame reads destroyed object", slog.String("object", b.String()))
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/nativesurface/toolkit"
)

// keys maps window system keys to toolkit keys. Others are ignored.
var keys = map[gpucontext.Key]toolkit.Key{
	gpucontext.KeyEscape: toolkit.KeyEscape,
	gpucontext.KeySpace:  toolkit.KeySpace,
}

// runWindow opens a gogpu window and drives the toolkit loop from its
// frame callback. Each callback forwards the framebuffer size, runs one
// loop iteration and uploads the most recent engine frame to the window.
func runWindow(a *surfaceApp, cfg config) (int, error) {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(true))

	var canvas *ggcanvas.Canvas

	app.OnDraw(func(dc *gogpu.Context) {
		if a.loop.Exited() {
			app.Quit()
			return
		}

		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		a.presenter.Resize(w, h)
		a.resize(w, h)
		a.frame()

		frame := a.presenter.Frame()
		if frame == nil {
			return
		}

		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, w, h)
			if err != nil {
				log.Printf("Failed to create canvas: %v", err)
				a.loop.Exit(1)
				return
			}
		}
		if cw, ch := canvas.Size(); cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				log.Printf("Resize error: %v", err)
			}
		}

		img := gg.ImageBufFromImage(frame)
		if err := canvas.Draw(func(cc *gg.Context) {
			cc.DrawImage(img, 0, 0)
		}); err != nil {
			log.Printf("Draw error: %v", err)
			return
		}
		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Printf("Render error: %v", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if k, ok := keys[key]; ok {
			a.window.Post(toolkit.KeyEvent{Key: k})
		}
	})

	app.OnClose(func() {
		a.close()
		if canvas != nil {
			_ = canvas.Close()
		}
	})

	err := app.Run()
	a.close()
	if err != nil {
		return 1, err
	}
	return a.loop.ExitCode(), nil
}

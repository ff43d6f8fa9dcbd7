// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/nativesurface/engine"
	"github.com/gogpu/nativesurface/engine/soft"
	"github.com/gogpu/nativesurface/host"
	"github.com/gogpu/nativesurface/native"
	"github.com/gogpu/nativesurface/rendersurface"
	"github.com/gogpu/nativesurface/toolkit"
)

// surfaceApp is the assembled window: toolkit widget, render surface and
// the software engine presenting into an in-memory frame.
type surfaceApp struct {
	loop      *toolkit.Loop
	tk        *toolkit.Widget
	window    *host.Window
	rs        *rendersurface.RenderSurface
	eng       *soft.Engine
	presenter *native.ImagePresenter
	registry  *native.Registry
	closeOnce sync.Once
}

// newSurfaceApp builds the object graph and initializes the surface before
// the widget is shown. Any failure is returned and nothing is left running.
func newSurfaceApp(cfg config, exitKey toolkit.Key) (*surfaceApp, error) {
	a := &surfaceApp{
		loop:      toolkit.NewLoop(64),
		presenter: native.NewImagePresenter(0, 0),
		registry:  native.NewRegistry(),
	}
	a.tk = toolkit.NewWidget(a.loop,
		toolkit.WithRegistry(a.registry),
		toolkit.WithSize(cfg.Width, cfg.Height),
		toolkit.WithDevicePixelRatio(cfg.Scale),
	)
	if err := a.registry.Attach(a.tk.WinID(), a.presenter); err != nil {
		a.tk.Close()
		return nil, err
	}

	a.eng = soft.New(soft.WithRegistry(a.registry))
	rs, err := rendersurface.New(a.tk, engine.Share(a.eng))
	if err != nil {
		a.tk.Close()
		return nil, err
	}
	a.rs = rs

	a.window = host.New(a.loop, host.WithExitKey(exitKey))
	if err := a.window.Init(rs); err != nil {
		a.abort()
		return nil, err
	}
	if err := rs.Widget().Init(); err != nil {
		a.abort()
		return nil, fmt.Errorf("init surface: %w", err)
	}
	a.tk.Show()
	return a, nil
}

// resize applies a framebuffer size in physical pixels.
func (a *surfaceApp) resize(width, height int) {
	dpr := a.tk.DevicePixelRatio()
	a.tk.Resize(image.Pt(int(float64(width)/dpr), int(float64(height)/dpr)))
}

// frame asks for a repaint and runs the loop until it is idle.
func (a *surfaceApp) frame() {
	a.tk.Update()
	a.loop.ProcessEvents()
}

// close delivers the close event, which shuts the surface down, and
// releases the window handle. It works after the loop has exited.
func (a *surfaceApp) close() {
	a.closeOnce.Do(func() {
		a.loop.Send(a.window, toolkit.CloseEvent{})
		a.tk.Close()
	})
}

func (a *surfaceApp) abort() {
	a.rs.Shutdown()
	a.tk.Close()
}

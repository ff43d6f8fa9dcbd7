// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package nativesurface hosts a rendering engine's output inside a window
// owned by a GUI toolkit.
//
// # Overview
//
// The toolkit normally paints its own widgets. A native surface opts out of
// that: the widget exposes its native window handle once, turns paint
// notifications into coalesced deferred redraws, and hands the pixels to the
// engine. Everything the engine creates on behalf of the surface is held in
// an owning wrapper that destroys it through the engine that created it.
//
// # Packages
//
//   - native: window handles, the handle registry, frame presenters
//   - engine: the engine boundary, entities, shared engine references
//   - engine/soft: a software engine with an asynchronous command queue
//   - scoped: move-only owners for engine resources and entities
//   - toolkit: a single-threaded cooperative event loop and widget geometry
//   - widget: the native-surface widget state machine
//   - rendersurface: the concrete surface owning the engine resource graph
//   - host: the top-level window holding one render surface
//   - material: the compiled material package format
//
// # Lifecycle
//
//	loop := toolkit.NewLoop(0)
//	win := host.New(loop)
//	rs, err := rendersurface.New(toolkit.NewWidget(loop), engine.Share(soft.New()))
//	if err != nil {
//	    return err
//	}
//	win.Init(rs)
//	if err := rs.Widget().Init(); err != nil {
//	    return err
//	}
//	loop.Run(ctx)
//
// # Logging
//
// All packages log through [Logger]; by default nothing is written.
// Call [SetLogger] to enable output.
package nativesurface

// Version information
const (
	// Version is the current version of the module.
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)

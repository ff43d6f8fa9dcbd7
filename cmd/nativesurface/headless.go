// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/gogpu/gg"

	"github.com/gogpu/nativesurface/engine"
)

var errNoFrame = errors.New("no frame was presented")

// runHeadless renders cfg.Frames frames, waits for the engine to finish them
// and saves the last one.
func runHeadless(a *surfaceApp, cfg headlessConfig) error {
	for range cfg.Frames {
		a.frame()
	}
	if err := engine.WaitIdle(a.eng); err != nil {
		a.close()
		return fmt.Errorf("wait for frames: %w", err)
	}
	frame := a.presenter.Frame()
	stats := a.eng.Stats()
	a.close()

	if frame == nil {
		return errNoFrame
	}
	if err := gg.NewContextForImage(frame).SavePNG(cfg.Output); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	log.Printf("Frame saved to %s (%dx%d, %d presented, %d skipped)\n",
		cfg.Output, frame.Bounds().Dx(), frame.Bounds().Dy(),
		stats.FramesPresented, stats.FramesSkipped)
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command nativesurface shows the vertex-colored triangle in a window.
//
// Settings come from config.toml (see -config) and can be overridden with
// flags. With -backend=headless no window is opened: a few frames are
// rendered and the last one is written to a PNG file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/nativesurface"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "configuration file")
		title      = flag.String("title", "", "window title")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		scale      = flag.Float64("scale", 0, "device pixel ratio")
		backend    = flag.String("backend", "", "gogpu or headless")
		logLevel   = flag.String("log-level", "", "debug, info, warn or error")
		frames     = flag.Int("frames", 0, "frames to render in headless mode")
		output     = flag.String("output", "", "PNG written in headless mode")
	)
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg, err := loadConfig(*configPath, !explicit["config"])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if explicit["title"] {
		cfg.Title = *title
	}
	if explicit["width"] {
		cfg.Width = *width
	}
	if explicit["height"] {
		cfg.Height = *height
	}
	if explicit["scale"] {
		cfg.Scale = *scale
	}
	if explicit["backend"] {
		cfg.Backend = *backend
	}
	if explicit["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if explicit["frames"] {
		cfg.Headless.Frames = *frames
	}
	if explicit["output"] {
		cfg.Headless.Output = *output
	}

	level, exitKey, err := cfg.validate()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	nativesurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	a, err := newSurfaceApp(cfg, exitKey)
	if err != nil {
		log.Fatalf("Failed to initialize surface: %v", err)
	}

	var code int
	switch cfg.Backend {
	case backendHeadless:
		err = runHeadless(a, cfg.Headless)
	default:
		code, err = runWindow(a, cfg)
	}
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

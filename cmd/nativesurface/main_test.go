// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/nativesurface/toolkit"
)

func TestDecodeConfig(t *testing.T) {
	cfg := defaultConfig()
	err := decodeConfig([]byte(`
title = "Triangle"
width = 320
backend = "headless"
log_level = "debug"

[headless]
frames = 5
`), &cfg)
	if err != nil {
		t.Fatalf("decodeConfig: %v", err)
	}
	if cfg.Title != "Triangle" || cfg.Width != 320 || cfg.Backend != backendHeadless {
		t.Errorf("decoded %+v", cfg)
	}
	if cfg.Height != 600 {
		t.Errorf("Height = %d, want default 600", cfg.Height)
	}
	if cfg.Headless.Frames != 5 || cfg.Headless.Output != "surface.png" {
		t.Errorf("Headless = %+v", cfg.Headless)
	}
}

func TestDecodeConfigUnknownField(t *testing.T) {
	cfg := defaultConfig()
	if err := decodeConfig([]byte("fullscreen = true\n"), &cfg); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := loadConfig(path, true); err != nil {
		t.Errorf("optional missing file: %v", err)
	}
	if _, err := loadConfig(path, false); err == nil {
		t.Error("required missing file accepted")
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("exit_key = \"Q\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path, false)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	_, key, err := cfg.validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if key != toolkit.KeyQ {
		t.Errorf("exit key = %v, want Q", key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config)
		wantErr bool
	}{
		{"defaults", func(*config) {}, false},
		{"headless", func(c *config) { c.Backend = backendHeadless }, false},
		{"bad level", func(c *config) { c.LogLevel = "loud" }, true},
		{"bad key", func(c *config) { c.ExitKey = "Pause" }, true},
		{"zero width", func(c *config) { c.Width = 0 }, true},
		{"zero scale", func(c *config) { c.Scale = 0 }, true},
		{"bad backend", func(c *config) { c.Backend = "vulkan" }, true},
		{"no frames", func(c *config) { c.Backend = backendHeadless; c.Headless.Frames = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			_, _, err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.LogLevel = "warn"
	level, _, err := cfg.validate()
	if err != nil {
		t.Fatal(err)
	}
	if level != slog.LevelWarn {
		t.Errorf("level = %v, want WARN", level)
	}
}

func headlessConfigForTest(t *testing.T) config {
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 64, 48
	cfg.Scale = 2
	cfg.Backend = backendHeadless
	cfg.Headless.Frames = 2
	cfg.Headless.Output = filepath.Join(t.TempDir(), "frame.png")
	return cfg
}

func TestRunHeadless(t *testing.T) {
	cfg := headlessConfigForTest(t)
	a, err := newSurfaceApp(cfg, toolkit.KeyEscape)
	if err != nil {
		t.Fatalf("newSurfaceApp: %v", err)
	}
	if err := runHeadless(a, cfg.Headless); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	f, err := os.Open(cfg.Headless.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 128 || got.Y != 96 {
		t.Errorf("output size = %v, want 128x96", got)
	}

	if s := a.eng.Stats(); s.LiveObjects != 0 || s.UseAfterDestroy != 0 {
		t.Errorf("after run: %+v", s)
	}
}

func TestExitKeyStopsLoop(t *testing.T) {
	cfg := headlessConfigForTest(t)
	a, err := newSurfaceApp(cfg, toolkit.KeyQ)
	if err != nil {
		t.Fatalf("newSurfaceApp: %v", err)
	}
	defer a.close()

	a.window.Post(toolkit.KeyEvent{Key: toolkit.KeyEscape})
	a.loop.ProcessEvents()
	if a.loop.Exited() {
		t.Fatal("Escape stopped the loop with Q as exit key")
	}
	a.window.Post(toolkit.KeyEvent{Key: toolkit.KeyQ})
	a.loop.ProcessEvents()
	if !a.loop.Exited() || a.loop.ExitCode() != 0 {
		t.Errorf("Exited = %v, code = %d", a.loop.Exited(), a.loop.ExitCode())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	a, err := newSurfaceApp(headlessConfigForTest(t), toolkit.KeyEscape)
	if err != nil {
		t.Fatalf("newSurfaceApp: %v", err)
	}
	a.close()
	a.close()
	if n := a.registry.Len(); n != 0 {
		t.Errorf("registry holds %d handles after close", n)
	}
}

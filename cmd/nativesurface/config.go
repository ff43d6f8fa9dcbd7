// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/nativesurface/toolkit"
)

// Backends selectable with the backend setting.
const (
	backendGoGPU    = "gogpu"
	backendHeadless = "headless"
)

// config is the contents of config.toml.
type config struct {
	Title    string  `toml:"title"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Scale    float64 `toml:"scale"`
	Backend  string  `toml:"backend"`
	LogLevel string  `toml:"log_level"`
	ExitKey  string  `toml:"exit_key"`

	Headless headlessConfig `toml:"headless"`
}

// headlessConfig controls the windowless run.
type headlessConfig struct {
	Frames int    `toml:"frames"`
	Output string `toml:"output"`
}

func defaultConfig() config {
	return config{
		Title:    "Native surface",
		Width:    800,
		Height:   600,
		Scale:    1,
		Backend:  backendGoGPU,
		LogLevel: "info",
		ExitKey:  toolkit.KeyEscape.String(),
		Headless: headlessConfig{
			Frames: 3,
			Output: "surface.png",
		},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error
// when optional is set.
func loadConfig(path string, optional bool) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && optional {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := decodeConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// validate checks the settings and returns the parsed log level and exit key.
func (c config) validate() (slog.Level, toolkit.Key, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, 0, fmt.Errorf("log_level: %w", err)
	}
	key, err := toolkit.ParseKey(c.ExitKey)
	if err != nil {
		return 0, 0, fmt.Errorf("exit_key: %w", err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0, fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return 0, 0, fmt.Errorf("invalid scale %v", c.Scale)
	}
	switch c.Backend {
	case backendGoGPU:
	case backendHeadless:
		if c.Headless.Frames <= 0 {
			return 0, 0, fmt.Errorf("headless.frames must be positive, got %d", c.Headless.Frames)
		}
	default:
		return 0, 0, fmt.Errorf("unknown backend %q", c.Backend)
	}
	return level, key, nil
}

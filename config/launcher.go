// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/launcher.go
// Summary: Typed snapshot of the launcher settings.

package config

import (
	"image/color"
	"time"
)

// Font selects the label typeface.
type Font struct {
	Family string
	Size   float64
}

// Colors holds the label and background colors.
type Colors struct {
	Foreground color.RGBA
	Background color.RGBA
}

// Input tunes touch and scroll handling.
type Input struct {
	// MaxTapDistance is the squared distance in pixels before a touch turns into a drag.
	MaxTapDistance   float64
	VelocityInterval time.Duration
	VelocityFriction float64
	MouseWheelSpeed  float64
}

// Launcher is the parsed configuration consumed by the launcher core.
type Launcher struct {
	Font       Font
	Colors     Colors
	Input      Input
	CacheSize  int
	PixmapsDir string
}

// DefaultLauncher returns the built-in launcher settings.
func DefaultLauncher() Launcher {
	cfg := make(Config)
	applySystemDefaults(cfg)
	return LauncherFrom(cfg)
}

// LauncherFrom extracts the launcher settings from a config.
func LauncherFrom(cfg Config) Launcher {
	l := Launcher{
		Font: Font{
			Family: cfg.GetString(SectionFont, "family", "Sans"),
			Size:   cfg.GetFloat(SectionFont, "size", 12),
		},
		Colors: Colors{
			Foreground: cfg.GetColor(SectionColors, "foreground", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
			Background: cfg.GetColor(SectionColors, "background", color.RGBA{R: 24, G: 24, B: 24, A: 0xff}),
		},
		Input: Input{
			MaxTapDistance:   cfg.GetFloat(SectionInput, "max_tap_distance", 400),
			VelocityInterval: cfg.GetMillis(SectionInput, "velocity_interval_ms", 30*time.Millisecond),
			VelocityFriction: cfg.GetFloat(SectionInput, "velocity_friction", 0.85),
			MouseWheelSpeed:  cfg.GetFloat(SectionInput, "mousewheel_speed", 10),
		},
		CacheSize:  cfg.GetInt(SectionCache, "max_entries", 512),
		PixmapsDir: cfg.GetString(SectionIcons, "pixmaps_dir", "/usr/share/pixmaps"),
	}
	if l.Font.Size <= 0 {
		l.Font.Size = 12
	}
	if l.Input.VelocityInterval <= 0 {
		l.Input.VelocityInterval = 30 * time.Millisecond
	}
	if l.Input.VelocityFriction <= 0 || l.Input.VelocityFriction > 1 {
		l.Input.VelocityFriction = 0.85
	}
	if l.CacheSize <= 0 {
		l.CacheSize = 512
	}
	return l
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Fallback values for keys missing from tapgrid.json.

package config

const (
	SectionFont   = "font"
	SectionColors = "colors"
	SectionInput  = "input"
	SectionCache  = "cache"
	SectionIcons  = "icons"
)

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults(SectionFont, Section{
		"family": "Sans",
		"size":   12.0,
	})
	cfg.RegisterDefaults(SectionColors, Section{
		"foreground": "#ffffff",
		"background": "#181818",
	})
	cfg.RegisterDefaults(SectionInput, Section{
		"max_tap_distance":     400.0,
		"velocity_interval_ms": 30,
		"velocity_friction":    0.85,
		"mousewheel_speed":     10.0,
	})
	cfg.RegisterDefaults(SectionCache, Section{
		"max_entries": 512,
	})
	cfg.RegisterDefaults(SectionIcons, Section{
		"pixmaps_dir": "/usr/share/pixmaps",
	})
}

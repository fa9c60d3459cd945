// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration and built-in icon artwork.

package defaults

import (
	"embed"
	"fmt"
)

//go:embed tapgrid.json icons/*.svg
var fs embed.FS

// SystemConfig returns the embedded tapgrid.json.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("tapgrid.json")
}

// Icon returns the SVG source of a built-in icon (poweroff, reboot, config,
// hidden or placeholder).
func Icon(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("icon name is required")
	}
	return fs.ReadFile(fmt.Sprintf("icons/%s.svg", name))
}

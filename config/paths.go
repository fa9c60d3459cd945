// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for tapgrid configuration.

package config

import (
	"os"
	"path/filepath"
)

// Dir returns the tapgrid configuration directory.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tapgrid"), nil
}

// Path returns the location of tapgrid.json.
func Path() (string, error) {
	return systemConfigPath()
}

func systemConfigPath() (string, error) {
	root, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

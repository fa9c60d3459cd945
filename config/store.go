// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load logic for the launcher config store.

package config

import "log"

// loadSystemLocked reads tapgrid.json, seeding it from the embedded defaults
// when it is missing or empty. A file that fails to parse keeps the previous
// in-memory config so a half-written edit never blanks the launcher.
func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve config path: %v", err)
		if len(system) == 0 {
			system = make(Config)
			applySystemDefaults(system)
		}
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read config %s: %v", path, readErr)
		if len(system) == 0 {
			system = make(Config)
			applySystemDefaults(system)
		}
		return readErr
	}

	if !exists || len(cfg) == 0 {
		cfg = defaultSystemConfig()
		if cfg == nil {
			cfg = make(Config)
		}
		applySystemDefaults(cfg)
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default config: %v", err)
			readErr = err
		}
	} else {
		applySystemDefaults(cfg)
	}

	system = cfg
	if readErr == nil && exists {
		log.Printf("Config: Loaded config from %s", path)
	}
	return readErr
}

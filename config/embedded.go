// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from the embedded tapgrid.json.

package config

import (
	"encoding/json"
	"sync"

	"github.com/framegrace/tapgrid/defaults"
)

var (
	embeddedSystemOnce sync.Once
	embeddedSystem     Config
	embeddedSystemErr  error
)

// embeddedSystemDefaults returns the parsed defaults, cached after the first call.
func embeddedSystemDefaults() (Config, error) {
	embeddedSystemOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedSystemErr = err
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			embeddedSystemErr = err
			return
		}
		embeddedSystem = cfg
	})
	return embeddedSystem, embeddedSystemErr
}

// defaultSystemConfig returns a copy of the embedded defaults.
func defaultSystemConfig() Config {
	cfg, err := embeddedSystemDefaults()
	if err != nil || cfg == nil {
		return nil
	}
	return Clone(cfg)
}

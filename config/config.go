// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Launcher configuration store backed by tapgrid.json.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const systemConfigName = "tapgrid.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	loadErr error
)

// Err returns the most recent load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the launcher configuration (tapgrid.json).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Reload re-reads tapgrid.json from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	if loadErr != nil {
		log.Printf("Config: Reload failed: %v", loadErr)
	}
	return loadErr
}

// Clone returns a copy of the config and its sections.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for sectionName, section := range cfg {
		switch v := section.(type) {
		case map[string]interface{}:
			clone[sectionName] = cloneSection(v)
		case Section:
			clone[sectionName] = cloneSection(v)
		default:
			clone[sectionName] = v
		}
	}
	return clone
}

func cloneSection(in map[string]interface{}) Section {
	out := make(Section, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	loadErr = loadSystemLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

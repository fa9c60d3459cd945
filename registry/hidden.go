// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/hidden.go
// Summary: Adds and strips NoDisplay=true markers in .desktop files.

package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const hiddenLine = "NoDisplay=true"

// addMarker inserts NoDisplay=true at the end of the primary group of path,
// creating the file with just the marker when it does not exist.
func addMarker(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		return os.WriteFile(path, []byte(primaryGroup+"\n"+hiddenLine+"\n"), 0644)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	end := groupEnd(lines)
	at := end
	for at > 0 && strings.TrimSpace(lines[at-1]) == "" {
		at--
	}
	lines = append(lines[:at], append([]string{hiddenLine}, lines[at:]...)...)
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

// stripMarker removes NoDisplay=true from the primary group of path. The file
// is deleted once nothing but the group header and blank lines would remain.
func stripMarker(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	end := groupEnd(lines)
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if i < end && isMarker(line) {
			continue
		}
		kept = append(kept, line)
	}

	if onlyHeader(kept) {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(strings.Join(kept, "\n")), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func groupEnd(lines []string) int {
	for i, line := range lines {
		if !inPrimaryGroup(line) {
			return i
		}
	}
	return len(lines)
}

func isMarker(line string) bool {
	key, value, ok := splitKey(line)
	return ok && key == "NoDisplay" && strings.TrimSpace(value) == "true"
}

func onlyHeader(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && trimmed != primaryGroup {
			return false
		}
	}
	return true
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/desktop.go
// Summary: Parses the primary group of .desktop files.

package registry

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const primaryGroup = "[Desktop Entry]"

// DesktopFile holds the keys the launcher cares about. Unknown keys are
// dropped and repeated keys keep their last value.
type DesktopFile struct {
	Name      string
	Icon      string
	Exec      string
	HasName   bool
	HasIcon   bool
	HasExec   bool
	NoDisplay bool
}

// ParseDesktopFile reads lines up to the first group header other than
// [Desktop Entry].
func ParseDesktopFile(r io.Reader) (DesktopFile, error) {
	var df DesktopFile
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if !inPrimaryGroup(line) {
			break
		}
		key, value, ok := splitKey(line)
		if !ok {
			continue
		}
		switch key {
		case "Name":
			df.Name, df.HasName = value, true
		case "Icon":
			df.Icon, df.HasIcon = value, true
		case "Exec":
			df.Exec, df.HasExec = stripFieldCodes(value), true
		case "NoDisplay":
			df.NoDisplay = strings.TrimSpace(value) == "true"
		}
	}
	return df, scanner.Err()
}

// LoadDesktopFile parses the file at path.
func LoadDesktopFile(path string) (DesktopFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return DesktopFile{}, err
	}
	defer f.Close()
	return ParseDesktopFile(f)
}

// inPrimaryGroup reports whether line still belongs to the leading group.
func inPrimaryGroup(line string) bool {
	return strings.TrimRight(line, " \t\r") == primaryGroup || !strings.HasPrefix(line, "[")
}

func splitKey(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimRight(key, " \t"), strings.TrimLeft(value, " \t"), true
}

// stripFieldCodes drops the file and URL placeholders a launcher has nothing
// to substitute for.
func stripFieldCodes(exec string) string {
	fields := strings.Split(exec, " ")
	kept := fields[:0]
	for _, f := range fields {
		switch f {
		case "%f", "%F", "%u", "%U", "%k":
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

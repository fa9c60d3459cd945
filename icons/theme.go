// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: icons/theme.go
// Summary: Theme inheritance chain and icon directory classification.

package icons

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultTheme is where every inheritance chain starts.
	DefaultTheme = "default"
	// FallbackTheme always ends the chain.
	FallbackTheme = "hicolor"
)

// ClassKind is the image category of an icon directory.
type ClassKind uint8

const (
	// ClassSized is a bitmap of a known square size.
	ClassSized ClassKind = iota
	// ClassScalable is a vector image.
	ClassScalable
	// ClassBitmap is a bitmap of unknown size (pixmaps).
	ClassBitmap
	// ClassSymbolic is a monochrome image.
	ClassSymbolic
)

// Class is an image category plus, for sized bitmaps, their edge length.
type Class struct {
	Kind ClassKind
	Size int
}

// parseClass classifies a theme subdirectory name: "scalable", "symbolic",
// "NxN" or "NxN@k" where the scale multiplies the size.
func parseClass(dir string) (Class, bool) {
	switch dir {
	case "scalable":
		return Class{Kind: ClassScalable}, true
	case "symbolic":
		return Class{Kind: ClassSymbolic}, true
	}

	scale := 1
	if base, suffix, ok := strings.Cut(dir, "@"); ok {
		k, err := strconv.Atoi(suffix)
		if err != nil || k < 1 {
			return Class{}, false
		}
		dir, scale = base, k
	}

	w, h, ok := strings.Cut(dir, "x")
	if !ok {
		return Class{}, false
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Class{}, false
	}
	height, err := strconv.Atoi(h)
	if err != nil || height != width {
		return Class{}, false
	}
	return Class{Kind: ClassSized, Size: width * scale}, true
}

// themeChain walks Inherits= breadth first from DefaultTheme across every data
// root and appends FallbackTheme when the chain does not already contain it.
// Each theme appears once, so inheritance cycles terminate.
func themeChain(roots []string) []string {
	seen := map[string]bool{DefaultTheme: true}
	chain := []string{DefaultTheme}

	for i := 0; i < len(chain); i++ {
		for _, root := range roots {
			for _, parent := range readInherits(filepath.Join(root, "icons", chain[i], "index.theme")) {
				if seen[parent] {
					continue
				}
				seen[parent] = true
				chain = append(chain, parent)
			}
		}
	}

	if !seen[FallbackTheme] {
		chain = append(chain, FallbackTheme)
	}
	return chain
}

// readInherits returns the Inherits= list of the first group of an index.theme.
func readInherits(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var parents []string
	scanner := bufio.NewScanner(f)
	headers := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			headers++
			if headers > 1 {
				break
			}
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != "Inherits" {
			continue
		}
		parents = parents[:0]
		for _, parent := range strings.Split(value, ",") {
			if parent = strings.TrimSpace(parent); parent != "" {
				parents = append(parents, parent)
			}
		}
	}
	return parents
}

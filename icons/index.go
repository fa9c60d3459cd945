// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: icons/index.go
// Summary: Name to file lookup table built from icon themes and pixmaps.

package icons

import (
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPixmapsDir is the freedesktop fallback directory for loose icons.
const DefaultPixmapsDir = "/usr/share/pixmaps"

type candidates struct {
	theme string
	paths map[Class]string
}

// Index maps icon names to the files the owning theme provides for them.
// It is built once and only read afterwards.
type Index struct {
	themes []string
	icons  map[string]*candidates
}

// BuildIndex walks the theme chain in every data root (most important first)
// and then the pixmaps directory. A name belongs to the first theme in chain
// order that provides it; lower themes never contribute to it.
func BuildIndex(roots []string, pixmaps string) *Index {
	idx := &Index{
		themes: themeChain(roots),
		icons:  make(map[string]*candidates),
	}

	for _, theme := range idx.themes {
		for _, root := range roots {
			idx.scanTheme(theme, filepath.Join(root, "icons", theme))
		}
	}
	if pixmaps != "" {
		idx.scanPixmaps(pixmaps)
	}

	log.Printf("Icons: Indexed %d icon names across %d themes", len(idx.icons), len(idx.themes))
	return idx
}

// Themes returns the inheritance chain in lookup order.
func (x *Index) Themes() []string {
	return append([]string(nil), x.themes...)
}

// Len returns the number of indexed icon names.
func (x *Index) Len() int {
	return len(x.icons)
}

// Theme returns the theme that owns name, or "" for pixmaps and unknown names.
func (x *Index) Theme(name string) string {
	if c, ok := x.icons[name]; ok {
		return c.theme
	}
	return ""
}

// Resolve picks the best file for name at the requested pixel size: an exact
// size match, then a vector, then the closest bitmap size (larger on ties),
// then an unsized bitmap, then a symbolic image. Absolute paths are returned
// as is.
func (x *Index) Resolve(name string, size int) (Icon, error) {
	if name == "" {
		return Icon{}, ErrNotFound
	}
	if filepath.IsAbs(name) {
		return File(name), nil
	}

	c, ok := x.icons[name]
	if !ok {
		return Icon{}, ErrNotFound
	}

	best, bestRank, bestSize := "", -1, 0
	for class, path := range c.paths {
		rank := rankClass(class, size)
		if bestRank < 0 || rank < bestRank || (rank == bestRank && class.Size > bestSize) {
			best, bestRank, bestSize = path, rank, class.Size
		}
	}
	if best == "" {
		return Icon{}, ErrNotFound
	}
	return File(best), nil
}

const (
	rankExact = iota
	rankScalable
	rankSized
)

// rankClass orders candidate classes; lower is better. Sized bitmaps rank by
// their distance from the wanted size and always beat unsized bitmaps.
func rankClass(class Class, size int) int {
	const far = 1 << 20
	switch class.Kind {
	case ClassSized:
		if class.Size == size {
			return rankExact
		}
		d := class.Size - size
		if d < 0 {
			d = -d
		}
		return rankSized + d
	case ClassScalable:
		return rankScalable
	case ClassBitmap:
		return far
	default:
		return far + 1
	}
}

func (x *Index) scanTheme(theme, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		class, ok := parseClass(entry.Name())
		if !ok || !isDir(dir, entry) {
			continue
		}
		classDir := filepath.Join(dir, entry.Name())
		categories, err := os.ReadDir(classDir)
		if err != nil {
			continue
		}
		for _, category := range categories {
			if !isDir(classDir, category) {
				continue
			}
			x.scanCategory(theme, class, filepath.Join(classDir, category.Name()))
		}
	}
}

func (x *Index) scanCategory(theme string, class Class, dir string) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, file := range files {
		name, ext := splitExt(file.Name())
		if ext != ".png" && ext != ".svg" {
			continue
		}
		if class.Kind == ClassSymbolic {
			stripped, ok := strings.CutSuffix(name, "-symbolic")
			if !ok {
				continue
			}
			name = stripped
		}
		x.add(theme, name, class, filepath.Join(dir, file.Name()))
	}
}

func (x *Index) scanPixmaps(dir string) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name, ext := splitExt(file.Name())
		var class Class
		switch ext {
		case ".svg":
			class = Class{Kind: ClassScalable}
		case ".png", ".ico":
			class = Class{Kind: ClassBitmap}
		default:
			continue
		}
		x.add("", name, class, filepath.Join(dir, file.Name()))
	}
}

// add records path unless name is already owned by another theme or the
// class already has a path.
func (x *Index) add(theme, name string, class Class, path string) {
	if name == "" {
		return
	}
	c, ok := x.icons[name]
	if !ok {
		c = &candidates{theme: theme, paths: make(map[Class]string)}
		x.icons[name] = c
	} else if c.theme != theme {
		return
	}
	if _, taken := c.paths[class]; !taken {
		c.paths[class] = path
	}
}

func splitExt(file string) (string, string) {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext), strings.ToLower(ext)
}

// isDir follows symlinks, which themes use heavily for size aliases.
func isDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/font.go
// Summary: Resolves a font family name to a TrueType face.

package render

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	sansAliases = map[string]bool{"": true, "go": true, "goregular": true, "sans": true, "sansserif": true}
	monoAliases = map[string]bool{"gomono": true, "mono": true, "monospace": true}
)

// loadFont finds family among the embedded Go fonts and the installed
// TrueType files, falling back to Go Regular.
func loadFont(family string) *truetype.Font {
	key := normalizeFamily(family)
	switch {
	case sansAliases[key]:
		return mustParse(goregular.TTF)
	case monoAliases[key]:
		return mustParse(gomono.TTF)
	}

	if path := findFontFile(key, fontDirs()); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if f, err := truetype.Parse(data); err == nil {
				return f
			}
		}
		log.Printf("Render: Failed to load font %s, using Go Regular", path)
	} else {
		log.Printf("Render: Font family %q not found, using Go Regular", family)
	}
	return mustParse(goregular.TTF)
}

// newFace sizes f in points at 96 DPI times the output scale.
func newFace(f *truetype.Font, points, scale float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    points,
		DPI:     96 * scale,
		Hinting: font.HintingFull,
	})
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

func normalizeFamily(family string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(family))
}

func fontDirs() []string {
	var dirs []string
	if data := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(data) {
		dirs = append(dirs, filepath.Join(data, "fonts"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
	}
	return append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
}

// findFontFile returns the first .ttf whose normalized base name is key, or
// key followed by "regular".
func findFontFile(key string, dirs []string) string {
	var fallback string
	for _, dir := range dirs {
		var found string
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".ttf") {
				return nil
			}
			name := normalizeFamily(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
			switch name {
			case key:
				found = path
				return filepath.SkipAll
			case key + "regular":
				if fallback == "" {
					fallback = path
				}
			}
			return nil
		})
		if found != "" {
			return found
		}
	}
	return fallback
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: icons/svg.go
// Summary: Vector icon rasterization and the embedded built-in artwork.

package icons

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/framegrace/tapgrid/defaults"
)

// parseSVG reads an SVG document. Unsupported elements are skipped.
func parseSVG(r io.Reader) (*oksvg.SvgIcon, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("svg has no usable view box")
	}
	return icon, nil
}

// rasterize renders icon into a size×size image, preserving its aspect ratio
// and centering it. SetTarget mutates icon, so callers sharing an icon must
// serialize.
func rasterize(icon *oksvg.SvgIcon, size int) *image.RGBA {
	w, h := icon.ViewBox.W, icon.ViewBox.H
	scale := float64(size) / w
	if hs := float64(size) / h; hs < scale {
		scale = hs
	}
	dw, dh := w*scale, h*scale
	icon.SetTarget((float64(size)-dw)/2, (float64(size)-dh)/2, dw, dh)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img
}

// builtin is one embedded icon, parsed on first use.
type builtin struct {
	name string
	once sync.Once
	mu   sync.Mutex
	icon *oksvg.SvgIcon
	err  error
}

func (b *builtin) render(size int) (*image.RGBA, error) {
	b.once.Do(func() {
		data, err := defaults.Icon(b.name)
		if err != nil {
			b.err = err
			return
		}
		b.icon, b.err = parseSVG(bytes.NewReader(data))
	})
	if b.err != nil {
		return nil, fmt.Errorf("builtin icon %s: %w", b.name, b.err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return rasterize(b.icon, size), nil
}

var builtins = map[Kind]*builtin{
	KindPoweroff:    {name: "poweroff"},
	KindReboot:      {name: "reboot"},
	KindConfig:      {name: "config"},
	KindHidden:      {name: "hidden"},
	KindPlaceholder: {name: "placeholder"},
}

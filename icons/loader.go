// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: icons/loader.go
// Summary: Decodes icon identities into premultiplied square images.

package icons

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/draw"
)

// Loader turns icon identities into pixels. The zero value is ready to use
// and safe for concurrent calls.
type Loader struct{}

// Load returns a size×size premultiplied image for icon. It never returns a
// nil image: on failure the placeholder artwork comes back together with the
// error so callers can log and carry on. A size below one yields an empty
// image and an error.
func (Loader) Load(icon Icon, size int) (*image.RGBA, error) {
	if size <= 0 {
		return &image.RGBA{}, fmt.Errorf("invalid icon size %d", size)
	}

	var (
		img *image.RGBA
		err error
	)
	switch {
	case icon.IsBuiltin():
		b, ok := builtins[icon.Kind]
		if !ok {
			return placeholder(size), fmt.Errorf("unknown builtin icon %v", icon.Kind)
		}
		img, err = b.render(size)
	case icon.Format == FormatVector:
		img, err = loadVector(icon.Path, size)
	default:
		img, err = loadBitmap(icon.Path, size)
	}
	if err != nil {
		return placeholder(size), err
	}
	return img, nil
}

func loadVector(path string, size int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()

	icon, err := parseSVG(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return rasterize(icon, size), nil
}

func loadBitmap(path string, size int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()

	src, err := decodeBitmap(f, path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	switch n, ok := src.(*image.NRGBA); {
	case b.Dx() == size && b.Dy() == size && ok:
		for y := 0; y < size; y++ {
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	case b.Dx() == size && b.Dy() == size:
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		draw.CatmullRom.Scale(dst, fit(b.Dx(), b.Dy(), size), src, b, draw.Src, nil)
	}

	premultiply(dst.Pix)
	return &image.RGBA{Pix: dst.Pix, Stride: dst.Stride, Rect: dst.Rect}, nil
}

func decodeBitmap(r io.Reader, path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".ico") {
		return ico.Decode(r)
	}
	img, _, err := image.Decode(r)
	return img, err
}

// fit returns the centered rectangle a w×h image occupies inside a size×size
// square when scaled without distortion.
func fit(w, h, size int) image.Rectangle {
	if w <= 0 || h <= 0 || w == h {
		return image.Rect(0, 0, size, size)
	}
	dw, dh := size, size
	if w > h {
		dh = (h*size + w/2) / w
	} else {
		dw = (w*size + h/2) / h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	x, y := (size-dw)/2, (size-dh)/2
	return image.Rect(x, y, x+dw, y+dh)
}

// placeholder renders the placeholder artwork, falling back to a flat tile if
// even the embedded SVG is unusable.
func placeholder(size int) *image.RGBA {
	if img, err := builtins[KindPlaceholder].render(size); err == nil {
		return img
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}), image.Point{}, draw.Src)
	return img
}

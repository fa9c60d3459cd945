// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/grid.go
// Summary: Cell placement and hit testing for the launcher grid.
// Usage: Rebuilt with New on every resize or scale change.

package grid

import (
	"image"
	"math"
)

// Dimensions at scale 1, in pixels.
const (
	EntryWidth  = 96
	EntryHeight = 112
	MinPadding  = 8
	IconSize    = 64
)

// Reserved grid slots for the built-in entries on the first row.
const (
	SlotPoweroff = 0
	SlotConfig   = 1
	SlotReboot   = 2
	reserved     = 3
)

// Grid maps entry indices to pixel rectangles in content coordinates, where
// y = 0 is the top of the unscrolled content.
type Grid struct {
	Width, Height int
	Scale         float64

	CellWidth, CellHeight int
	Padding               int
	Columns               int
	IconSize              int
}

// New lays out a width×height viewport at the given scale. There is always at
// least one column and padding never goes negative.
func New(width, height int, scale float64) Grid {
	if scale <= 0 {
		scale = 1
	}
	g := Grid{
		Width:      width,
		Height:     height,
		Scale:      scale,
		CellWidth:  scaled(EntryWidth, scale),
		CellHeight: scaled(EntryHeight, scale),
		IconSize:   scaled(IconSize, scale),
	}
	minPadding := scaled(MinPadding, scale)

	g.Columns = (width - minPadding) / (g.CellWidth + minPadding)
	if g.Columns < 1 {
		g.Columns = 1
	}
	g.Padding = (width - g.Columns*g.CellWidth) / (g.Columns + 1)
	if g.Padding < 0 {
		g.Padding = 0
	}
	return g
}

// scaled never returns less than one pixel so tiny scales still lay out.
func scaled(v int, scale float64) int {
	return max(1, int(math.Round(float64(v)*scale)))
}

// Origin returns the top-left corner of the cell at index. Index 0 is pinned
// to the left, 1 centered and 2 to the right of the first row; the rest fill
// the following rows left to right.
func (g Grid) Origin(index int) image.Point {
	switch index {
	case SlotPoweroff:
		return image.Pt(g.Padding, g.Padding)
	case SlotConfig:
		return image.Pt((g.Width-g.CellWidth)/2, g.Padding)
	case SlotReboot:
		return image.Pt(g.Width-g.Padding-g.CellWidth, g.Padding)
	}
	i := index - reserved
	column := i % g.Columns
	row := i/g.Columns + 1
	return image.Pt(
		(g.CellWidth+g.Padding)*column+g.Padding,
		(g.CellHeight+g.Padding)*row+g.Padding,
	)
}

// Rect returns the cell rectangle at index.
func (g Grid) Rect(index int) image.Rectangle {
	o := g.Origin(index)
	return image.Rect(o.X, o.Y, o.X+g.CellWidth, o.Y+g.CellHeight)
}

// IconRect returns where the icon sits inside the cell at index: centered
// horizontally with the same inset from the top.
func (g Grid) IconRect(index int) image.Rectangle {
	o := g.Origin(index)
	inset := (g.CellWidth - g.IconSize) / 2
	return image.Rect(o.X+inset, o.Y+inset, o.X+inset+g.IconSize, o.Y+inset+g.IconSize)
}

// HitTest returns the index of the cell containing the content point (x, y).
// Points in the padding, left of or above the grid, or past the last column
// hit nothing.
func (g Grid) HitTest(x, y float64) (int, bool) {
	px, py := int(math.Round(x)), int(math.Round(y))
	rx, ry := px-g.Padding, py-g.Padding
	if rx < 0 || ry < 0 {
		return 0, false
	}

	row := ry / (g.CellHeight + g.Padding)
	if row == 0 {
		pt := image.Pt(px, py)
		for _, slot := range [...]int{SlotPoweroff, SlotReboot, SlotConfig} {
			if pt.In(g.Rect(slot)) {
				return slot, true
			}
		}
		return 0, false
	}

	column := rx / (g.CellWidth + g.Padding)
	if column >= g.Columns {
		return 0, false
	}
	if rx%(g.CellWidth+g.Padding) >= g.CellWidth || ry%(g.CellHeight+g.Padding) >= g.CellHeight {
		return 0, false
	}
	return (row-1)*g.Columns + column + reserved, true
}

// Rows returns how many rows count entries occupy; the first row always
// exists for the built-ins.
func (g Grid) Rows(count int) int {
	rest := count - reserved
	if rest < 0 {
		rest = 0
	}
	return 1 + (rest+g.Columns-1)/g.Columns
}

// TotalHeight returns the content height for count entries, including the
// trailing padding.
func (g Grid) TotalHeight(count int) int {
	return (g.CellHeight+g.Padding)*g.Rows(count) + g.Padding
}

// MaxScroll is how far the content can scroll up for count entries.
func (g Grid) MaxScroll(count int) float64 {
	if d := g.TotalHeight(count) - g.Height; d > 0 {
		return float64(d)
	}
	return 0
}

// Visible reports whether a cell whose top edge sits at viewport y is at
// least partially on screen.
func (g Grid) Visible(y int) bool {
	return y >= -g.CellHeight && y < g.Height
}

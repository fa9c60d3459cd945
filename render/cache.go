// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/cache.go
// Summary: Memoizes composed grid cells keyed by icon identity and label.
// Usage: Render is called once per frame; style or scale changes purge everything.

package render

import (
	"image"
	"image/color"
	"log"
	"math"
	"runtime"

	"github.com/bluele/gcache"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/tapgrid/config"
	"github.com/framegrace/tapgrid/grid"
	"github.com/framegrace/tapgrid/icons"
	"github.com/framegrace/tapgrid/registry"
)

// IconLoader decodes icon identities; icons.Loader is the production one.
type IconLoader interface {
	Load(icon icons.Icon, size int) (*image.RGBA, error)
}

// Catalog supplies the entries to draw and their icon identities.
type Catalog interface {
	Grid(showHidden bool) []*registry.Entry
	Icon(e *registry.Entry, size int, showHidden bool) icons.Icon
}

// Style is everything besides the scale that changes how a cell looks.
type Style struct {
	FontFamily string
	FontSize   float64
	Foreground color.RGBA
	Background color.RGBA
}

// StyleFrom extracts the cell style from the launcher settings.
func StyleFrom(cfg config.Launcher) Style {
	return Style{
		FontFamily: cfg.Font.Family,
		FontSize:   cfg.Font.Size,
		Foreground: cfg.Colors.Foreground,
		Background: cfg.Colors.Background,
	}
}

// Visual is a composed cell and where it goes in the viewport.
type Visual struct {
	Image *image.RGBA
	Rect  image.Rectangle
	// Index is the grid slot the cell occupies.
	Index int
	Entry *registry.Entry
}

// Frame is the output of one render pass.
type Frame struct {
	Background color.RGBA
	Visuals    []Visual
}

// Stats counts cache activity since creation.
type Stats struct {
	Hits   int
	Misses int
	Loads  int
	Purges int
}

type cacheKey struct {
	icon icons.Icon
	name string
}

// Cache owns the composed cells. It is not safe for concurrent use; icon
// decoding inside Render fans out internally.
//
// The configured capacity is a floor for what one frame needs: the storage
// always holds at least the largest number of cells seen on screen at once.
type Cache struct {
	loader   IconLoader
	style    Style
	scale    float64
	capacity int
	visible  int
	size     int

	cells gcache.Cache
	font  *truetype.Font
	face  font.Face
	stats Stats
}

// NewCache creates a cache holding at most capacity cells.
func NewCache(loader IconLoader, style Style, scale float64, capacity int) *Cache {
	if scale <= 0 {
		scale = 1
	}
	if capacity <= 0 {
		capacity = 1
	}
	c := &Cache{
		loader:   loader,
		style:    style,
		scale:    scale,
		capacity: capacity,
		size:     capacity,
		cells:    gcache.New(capacity).LRU().Build(),
	}
	c.font = loadFont(style.FontFamily)
	c.face = newFace(c.font, style.FontSize, scale)
	return c
}

// Style returns the current cell style.
func (c *Cache) Style() Style { return c.style }

// Stats returns the cache counters.
func (c *Cache) Stats() Stats { return c.stats }

// SetStyle applies a new style, purging every cell when anything differs.
func (c *Cache) SetStyle(style Style) bool {
	if style == c.style {
		return false
	}
	if style.FontFamily != c.style.FontFamily {
		c.font = loadFont(style.FontFamily)
	}
	c.style = style
	c.face = newFace(c.font, style.FontSize, c.scale)
	c.purge()
	return true
}

// SetScale applies a new output scale, purging every cell when it changed.
func (c *Cache) SetScale(scale float64) bool {
	if scale <= 0 || scale == c.scale {
		return false
	}
	c.scale = scale
	c.face = newFace(c.font, c.style.FontSize, scale)
	c.purge()
	return true
}

// SetCapacity rebuilds the storage with a new bound, never below the number
// of cells the last frames showed.
func (c *Cache) SetCapacity(capacity int) bool {
	if capacity <= 0 || capacity == c.capacity {
		return false
	}
	c.capacity = capacity
	c.size = max(capacity, c.visible)
	c.cells = gcache.New(c.size).LRU().Build()
	return true
}

// Size is the number of cells the storage currently holds at most.
func (c *Cache) Size() int { return c.size }

// grow enlarges the storage so a frame of n cells never evicts itself,
// carrying over the cells in keys.
func (c *Cache) grow(n int, keys []cacheKey) {
	if n > c.visible {
		c.visible = n
	}
	if n <= c.size {
		return
	}
	log.Printf("Render: Growing cache from %d to %d cells", c.size, n)
	cells := gcache.New(n).LRU().Build()
	for _, key := range keys {
		if cell, err := c.cells.Get(key); err == nil {
			_ = cells.Set(key, cell)
		}
	}
	c.size = n
	c.cells = cells
}

func (c *Cache) purge() {
	c.cells.Purge()
	c.stats.Purges++
}

type pending struct {
	key   cacheKey
	icon  *image.RGBA
	slots []int
}

// Render returns the visuals for every entry at least partially inside the
// viewport, in grid order. Cached cells are reused unchanged; misses are
// loaded in parallel and composed before returning.
func (c *Cache) Render(catalog Catalog, offset float64, g grid.Grid, showHidden bool) []Visual {
	c.SetScale(g.Scale)

	entries := catalog.Grid(showHidden)
	shift := int(math.Round(offset))
	visuals := make([]Visual, 0, len(entries))
	var keys []cacheKey
	for index, e := range entries {
		rect := g.Rect(index).Add(image.Pt(0, shift))
		if !g.Visible(rect.Min.Y) {
			continue
		}
		visuals = append(visuals, Visual{Rect: rect, Index: index, Entry: e})
		keys = append(keys, cacheKey{icon: catalog.Icon(e, g.IconSize, showHidden), name: label(e, showHidden)})
	}
	c.grow(len(keys), keys)

	misses := make(map[cacheKey]*pending)
	var order []*pending
	for slot, key := range keys {
		if cell, err := c.cells.Get(key); err == nil {
			c.stats.Hits++
			visuals[slot].Image = cell.(*image.RGBA)
			continue
		}
		c.stats.Misses++
		p, ok := misses[key]
		if !ok {
			p = &pending{key: key}
			misses[key] = p
			order = append(order, p)
		}
		p.slots = append(p.slots, slot)
	}

	if len(order) == 0 {
		return visuals
	}

	c.loadIcons(order, g.IconSize)
	for _, p := range order {
		cell := c.compose(p.icon, p.key.name, g)
		if err := c.cells.Set(p.key, cell); err != nil {
			log.Printf("Render: Failed to cache %q: %v", p.key.name, err)
		}
		for _, slot := range p.slots {
			visuals[slot].Image = cell
		}
	}
	return visuals
}

// loadIcons decodes every pending icon, one goroutine per icon bounded by
// GOMAXPROCS. Failures already come back as placeholders and are only logged.
func (c *Cache) loadIcons(order []*pending, size int) {
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range order {
		group.Go(func() error {
			img, err := c.loader.Load(p.key.icon, size)
			if err != nil {
				log.Printf("Render: Icon %s: %v", p.key.icon, err)
			}
			p.icon = img
			return nil
		})
	}
	_ = group.Wait()
	c.stats.Loads += len(order)
}

// compose draws the background, the icon centered near the top and the label
// centered along the bottom, ellipsized to the cell width.
func (c *Cache) compose(icon *image.RGBA, name string, g grid.Grid) *image.RGBA {
	dc := gg.NewContext(g.CellWidth, g.CellHeight)
	dc.SetColor(c.style.Background)
	dc.Clear()

	inset := (g.CellWidth - g.IconSize) / 2
	if icon != nil {
		dc.DrawImage(icon, inset, inset)
	}

	if name != "" {
		dc.SetFontFace(c.face)
		dc.SetColor(c.style.Foreground)
		width := float64(g.CellWidth - 2*int(math.Round(2*g.Scale)))
		text := ellipsize(name, width, func(s string) float64 {
			w, _ := dc.MeasureString(s)
			return w
		})
		descent := float64(c.face.Metrics().Descent.Ceil())
		baseline := float64(g.CellHeight) - descent - float64(inset)/4
		dc.DrawStringAnchored(text, float64(g.CellWidth)/2, baseline, 0.5, 0)
	}

	return dc.Image().(*image.RGBA)
}

// label is the text under a cell; the configuration toggle only shows its
// name while configuring.
func label(e *registry.Entry, showHidden bool) string {
	if e.Action.Kind == registry.ActionToggleConfig && !showHidden {
		return ""
	}
	return e.Name
}

// ellipsize shortens s with a trailing ellipsis until measure fits within width.
func ellipsize(s string, width float64, measure func(string) float64) string {
	if measure(s) <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if measure(candidate) <= width {
			return candidate
		}
	}
	return "…"
}

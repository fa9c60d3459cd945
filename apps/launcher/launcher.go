// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/launcher/launcher.go
// Summary: Implements the touch launcher on top of the catalog, grid and render cache.
// Usage: A drawing surface feeds input events in and pulls frames out; a Launch decision ends the session.

package launcher

import (
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/google/shlex"

	"github.com/framegrace/tapgrid/config"
	"github.com/framegrace/tapgrid/grid"
	"github.com/framegrace/tapgrid/power"
	"github.com/framegrace/tapgrid/registry"
	"github.com/framegrace/tapgrid/render"
	"github.com/framegrace/tapgrid/scroll"
)

// DecisionKind says what the surface should do after a touch sequence.
type DecisionKind uint8

const (
	// None keeps the launcher running.
	None DecisionKind = iota
	// Launch asks the caller to start Command and exit.
	Launch
)

// Decision is the outcome of a touch sequence.
type Decision struct {
	Kind    DecisionKind
	Command string
}

type touchState struct {
	active   bool
	startX   float64
	startY   float64
	lastY    float64
	dragging bool
}

// Launcher owns the catalog, render cache, layout and scroll state. All
// methods must be called from the goroutine that drives the surface.
type Launcher struct {
	catalog  *registry.Registry
	cache    *render.Cache
	power    power.Service
	settings config.Launcher

	grid        grid.Grid
	scroll      *scroll.Velocity
	touch       touchState
	configuring bool
	dirty       bool
}

// New creates a launcher over reg. The viewport is empty until Resize.
func New(reg *registry.Registry, loader render.IconLoader, svc power.Service, settings config.Launcher) *Launcher {
	l := &Launcher{
		catalog:  reg,
		power:    svc,
		settings: settings,
		grid:     grid.New(0, 0, 1),
		scroll: scroll.New(scroll.Params{
			Interval: settings.Input.VelocityInterval,
			Friction: settings.Input.VelocityFriction,
		}),
		dirty: true,
	}
	l.cache = render.NewCache(loader, render.StyleFrom(settings), 1, settings.CacheSize)
	log.Printf("Launcher: Loaded %d entries (%d visible)", reg.Len(), reg.VisibleLen())
	return l
}

// Resize lays the grid out for a new viewport size.
func (l *Launcher) Resize(width, height int) {
	if width == l.grid.Width && height == l.grid.Height {
		return
	}
	l.grid = grid.New(width, height, l.grid.Scale)
	l.updateBounds()
	l.dirty = true
}

// SetScale changes the output scale. Every cached cell is redrawn.
func (l *Launcher) SetScale(scale float64) {
	if scale <= 0 || scale == l.grid.Scale {
		return
	}
	l.grid = grid.New(l.grid.Width, l.grid.Height, scale)
	l.updateBounds()
	l.dirty = true
}

// UpdateConfig applies reloaded settings. Style changes purge the render cache.
func (l *Launcher) UpdateConfig(settings config.Launcher) {
	l.settings = settings
	if l.cache.SetStyle(render.StyleFrom(settings)) {
		log.Printf("Launcher: Style changed, render cache purged")
	}
	l.cache.SetCapacity(settings.CacheSize)
	l.scroll.SetParams(scroll.Params{
		Interval: settings.Input.VelocityInterval,
		Friction: settings.Input.VelocityFriction,
	})
	l.dirty = true
}

// Rescan reloads the catalog from disk.
func (l *Launcher) Rescan() {
	l.catalog.Rescan()
	l.updateBounds()
	l.dirty = true
}

// Grid returns the current layout.
func (l *Launcher) Grid() grid.Grid { return l.grid }

// Offset returns the scroll offset in pixels (zero or negative).
func (l *Launcher) Offset() float64 { return l.scroll.Offset() }

// Configuring reports whether hidden entries are shown for editing.
func (l *Launcher) Configuring() bool { return l.configuring }

// Animating reports whether frames should keep being requested without input.
func (l *Launcher) Animating() bool { return l.scroll.Moving() }

// CacheStats exposes the render cache counters.
func (l *Launcher) CacheStats() render.Stats { return l.cache.Stats() }

// TouchDown starts a touch sequence at viewport coordinates (x, y).
func (l *Launcher) TouchDown(x, y float64) {
	l.scroll.Press()
	l.touch = touchState{active: true, startX: x, startY: y, lastY: y}
}

// TouchMotion follows the pointer. Once it strays further than the tap
// distance from where it started the sequence becomes a drag, and the whole
// distance travelled so far is applied at once.
func (l *Launcher) TouchMotion(x, y float64) {
	if !l.touch.active {
		return
	}
	if !l.touch.dragging {
		dx, dy := x-l.touch.startX, y-l.touch.startY
		if dx*dx+dy*dy <= l.settings.Input.MaxTapDistance {
			return
		}
		l.touch.dragging = true
		l.touch.lastY = l.touch.startY
	}
	if l.scroll.Drag(y - l.touch.lastY) {
		l.dirty = true
	}
	l.touch.lastY = y
}

// TouchUp ends the sequence. A drag starts coasting; anything else is a tap
// on the cell under the starting point.
func (l *Launcher) TouchUp() Decision {
	if !l.touch.active {
		return Decision{}
	}
	t := l.touch
	l.touch = touchState{}
	l.scroll.Release()
	if t.dragging {
		return Decision{}
	}

	index, ok := l.grid.HitTest(t.startX, t.startY-l.scroll.Offset())
	if !ok {
		return Decision{}
	}
	return l.tap(index)
}

// Scroll applies wheel notches; positive dy scrolls towards the top.
func (l *Launcher) Scroll(dy float64) {
	if l.scroll.ScrollBy(dy * l.settings.Input.MouseWheelSpeed) {
		l.dirty = true
	}
}

// Frame advances coasting to now and renders when anything changed. The
// second result is false when the previous frame is still current.
func (l *Launcher) Frame(now time.Time) (render.Frame, bool) {
	moved := l.scroll.Tick(now)
	if !l.dirty && !moved {
		return render.Frame{}, false
	}
	l.dirty = false
	return render.Frame{
		Background: l.settings.Colors.Background,
		Visuals:    l.cache.Render(l.catalog, l.scroll.Offset(), l.grid, l.configuring),
	}, true
}

func (l *Launcher) tap(index int) Decision {
	entries := l.catalog.Grid(l.configuring)
	if index >= len(entries) {
		return Decision{}
	}
	e := entries[index]

	switch e.Action.Kind {
	case registry.ActionPoweroff:
		if l.configuring {
			return Decision{}
		}
		if err := l.power.PowerOff(); err != nil {
			log.Printf("Launcher: Power off failed: %v", err)
		}
	case registry.ActionReboot:
		if l.configuring {
			return Decision{}
		}
		if err := l.power.Reboot(); err != nil {
			log.Printf("Launcher: Reboot failed: %v", err)
		}
	case registry.ActionToggleConfig:
		l.configuring = !l.configuring
		log.Printf("Launcher: Configuring %v", l.configuring)
		l.updateBounds()
		l.dirty = true
	case registry.ActionRun:
		if !l.configuring {
			log.Printf("Launcher: Launching '%s'", e.Name)
			return Decision{Kind: Launch, Command: e.Action.Command}
		}
		i := l.catalog.IndexOf(e)
		if err := l.catalog.ToggleHidden(i); err != nil {
			log.Printf("Launcher: Failed to toggle '%s', dropping it: %v", e.Name, err)
			l.catalog.Remove(i)
		}
		l.updateBounds()
		l.dirty = true
	}
	return Decision{}
}

func (l *Launcher) updateBounds() {
	count := len(l.catalog.Grid(l.configuring))
	if l.scroll.SetBounds(float64(l.grid.TotalHeight(count)), float64(l.grid.Height)) {
		l.dirty = true
	}
}

// Spawn starts command without waiting for it. The child does not inherit the
// launcher's standard streams.
func Spawn(command string) error {
	args, err := shlex.Split(command)
	if err != nil {
		return fmt.Errorf("split %q: %w", command, err)
	}
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}
	log.Printf("Launcher: Started %s (pid %d)", args[0], cmd.Process.Pid)
	return cmd.Process.Release()
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs the launcher inside a local tcell screen using half-block pixels.
// Usage: cmd/tapgrid calls Run; tests swap the screen via SetScreenFactory.

package devshell

import (
	"fmt"
	"image"
	"log"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/draw"

	"github.com/framegrace/tapgrid/apps/launcher"
	"github.com/framegrace/tapgrid/config"
	"github.com/framegrace/tapgrid/render"
)

// Each terminal cell stands for this many launcher pixels.
const (
	CellPixelsX = 8
	CellPixelsY = 16
)

const tickInterval = 16 * time.Millisecond

// Surface is the launcher as seen by the shell; *launcher.Launcher
// implements it.
type Surface interface {
	Resize(width, height int)
	TouchDown(x, y float64)
	TouchMotion(x, y float64)
	TouchUp() launcher.Decision
	Scroll(dy float64)
	Frame(now time.Time) (render.Frame, bool)
	Animating() bool
	Configuring() bool
	UpdateConfig(settings config.Launcher)
	Rescan()
}

// Options configures a Run.
type Options struct {
	// Title leads the status line.
	Title string
	// Updates delivers reloaded settings; nil disables live reload.
	Updates <-chan config.Launcher
	// Now is the frame clock; nil means time.Now.
	Now func() time.Time
}

type tick struct{}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run drives surface inside a tcell screen until the user quits (Esc, q or
// Ctrl-C) or taps an entry to launch, in which case that decision is returned.
func Run(surface Surface, opts Options) (launcher.Decision, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Title == "" {
		opts.Title = "tapgrid"
	}

	screen, err := screenFactory()
	if err != nil {
		return launcher.Decision{}, fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return launcher.Decision{}, fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()

	p := &presenter{screen: screen, surface: surface, title: opts.Title}
	p.resize(screen.Size())

	done := make(chan struct{})
	defer close(done)

	var animating atomic.Bool
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if animating.Load() {
					_ = screen.PostEvent(tcell.NewEventInterrupt(tick{}))
				}
			}
		}
	}()

	if opts.Updates != nil {
		go func() {
			for {
				select {
				case <-done:
					return
				case settings, ok := <-opts.Updates:
					if !ok {
						return
					}
					_ = screen.PostEvent(tcell.NewEventInterrupt(settings))
				}
			}
		}()
	}

	var buttons tcell.ButtonMask
	for {
		p.draw(opts.Now())
		animating.Store(surface.Animating())

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case nil:
			return launcher.Decision{}, nil
		case *tcell.EventInterrupt:
			if settings, ok := tev.Data().(config.Launcher); ok {
				log.Printf("Devshell: Applying reloaded configuration")
				surface.UpdateConfig(settings)
			}
		case *tcell.EventResize:
			p.resize(tev.Size())
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case tev.Key() == tcell.KeyCtrlC, tev.Key() == tcell.KeyEscape:
				return launcher.Decision{}, nil
			case tev.Key() == tcell.KeyRune && tev.Rune() == 'q':
				return launcher.Decision{}, nil
			case tev.Key() == tcell.KeyRune && tev.Rune() == 'r':
				surface.Rescan()
			}
		case *tcell.EventMouse:
			prev := buttons
			buttons = tev.Buttons()
			if d := p.mouse(tev, prev); d.Kind == launcher.Launch {
				return d, nil
			}
		}
	}
}

// presenter translates between terminal cells and launcher pixels.
type presenter struct {
	screen  tcell.Screen
	surface Surface
	title   string

	cols, rows int
	canvas     *image.RGBA
	samples    *image.RGBA
	frame      render.Frame
}

// resize reserves the bottom row for the status line.
func (p *presenter) resize(cols, rows int) {
	p.cols, p.rows = cols, rows
	gridRows := max(rows-1, 0)
	p.canvas = image.NewRGBA(image.Rect(0, 0, cols*CellPixelsX, gridRows*CellPixelsY))
	p.samples = image.NewRGBA(image.Rect(0, 0, cols, gridRows*2))
	p.surface.Resize(cols*CellPixelsX, gridRows*CellPixelsY)
}

func (p *presenter) draw(now time.Time) {
	frame, ok := p.surface.Frame(now)
	if !ok {
		return
	}
	p.frame = frame
	if p.canvas.Bounds().Empty() {
		p.status()
		p.screen.Show()
		return
	}
	compose(p.canvas, frame)
	draw.NearestNeighbor.Scale(p.samples, p.samples.Bounds(), p.canvas, p.canvas.Bounds(), draw.Src, nil)

	for y := 0; y < p.samples.Bounds().Dy()/2; y++ {
		for x := 0; x < p.cols; x++ {
			top := p.samples.RGBAAt(x, 2*y)
			bottom := p.samples.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			p.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	p.status()
	p.screen.Show()
}

func (p *presenter) status() {
	if p.rows == 0 {
		return
	}
	text := fmt.Sprintf("%s  %d cells", p.title, len(p.frame.Visuals))
	if p.surface.Configuring() {
		text += "  [configuring]"
	}
	text += "  q quit  r rescan"
	text = runewidth.Truncate(text, p.cols, "…")

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		p.screen.SetContent(x, p.rows-1, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < p.cols; x++ {
		p.screen.SetContent(x, p.rows-1, ' ', nil, style)
	}
}

// mouse maps the primary button to touches and the wheel to scrolling. A
// cell maps to the pixel at its center.
func (p *presenter) mouse(ev *tcell.EventMouse, prev tcell.ButtonMask) launcher.Decision {
	col, row := ev.Position()
	x := float64(col*CellPixelsX + CellPixelsX/2)
	y := float64(row*CellPixelsY + CellPixelsY/2)
	buttons := ev.Buttons()

	if buttons&tcell.WheelUp != 0 {
		p.surface.Scroll(1)
	}
	if buttons&tcell.WheelDown != 0 {
		p.surface.Scroll(-1)
	}

	down := buttons&tcell.Button1 != 0
	wasDown := prev&tcell.Button1 != 0
	switch {
	case down && !wasDown:
		p.surface.TouchDown(x, y)
	case down && wasDown:
		p.surface.TouchMotion(x, y)
	case !down && wasDown:
		p.surface.TouchMotion(x, y)
		return p.surface.TouchUp()
	}
	return launcher.Decision{}
}

// compose paints frame onto canvas: background first, then every visual at
// its rectangle. Visuals are premultiplied so Over blends them directly.
func compose(canvas *image.RGBA, frame render.Frame) {
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(frame.Background), image.Point{}, draw.Src)
	for _, v := range frame.Visuals {
		if v.Image == nil {
			continue
		}
		draw.Draw(canvas, v.Rect, v.Image, v.Image.Bounds().Min, draw.Over)
	}
}

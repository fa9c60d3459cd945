// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"math"
	"testing"
	"time"
)

var params = Params{Interval: 10 * time.Millisecond, Friction: 0.5}

func newScroller(content, viewport float64) *Velocity {
	v := New(params)
	v.SetBounds(content, viewport)
	return v
}

func TestDragReleaseWithoutVelocity(t *testing.T) {
	v := newScroller(1000, 400)
	v.Press()
	if v.Phase() != Dragging {
		t.Fatalf("expected dragging, got %v", v.Phase())
	}
	v.Drag(-50)
	v.Drag(0)
	v.Release()
	if v.Phase() != Coasting {
		t.Fatalf("expected coasting after release, got %v", v.Phase())
	}

	now := time.Unix(100, 0)
	v.Tick(now)
	v.Tick(now.Add(time.Second))
	if v.Phase() != Idle {
		t.Fatalf("expected idle, got %v", v.Phase())
	}
	if v.Offset() != -50 {
		t.Fatalf("expected offset -50, got %v", v.Offset())
	}
}

func TestCoastingClosedForm(t *testing.T) {
	v := newScroller(100000, 400)
	v.Press()
	v.Drag(-40)
	v.Release()

	start := time.Unix(100, 0)
	if v.Tick(start) {
		t.Fatalf("first tick must not move")
	}
	if v.Offset() != -40 {
		t.Fatalf("expected offset -40 after first tick, got %v", v.Offset())
	}

	v.Tick(start.Add(20 * time.Millisecond))
	// n = 2: offset += -40 * (1 - 0.5^3) / 0.5 = -70, velocity = -40 * 0.25 = -10.
	if math.Abs(v.Offset()-(-110)) > 1e-9 {
		t.Fatalf("expected offset -110, got %v", v.Offset())
	}
	if math.Abs(v.Speed()-(-10)) > 1e-9 {
		t.Fatalf("expected velocity -10, got %v", v.Speed())
	}
	if !v.Moving() {
		t.Fatalf("expected still moving")
	}

	v.Tick(start.Add(60 * time.Millisecond))
	if v.Phase() != Idle || v.Speed() != 0 {
		t.Fatalf("expected idle once velocity decays below 1, got %v %v", v.Phase(), v.Speed())
	}
}

func TestFrictionOne(t *testing.T) {
	v := newScroller(100000, 400)
	v.SetParams(Params{Interval: 10 * time.Millisecond, Friction: 1})
	v.Press()
	v.Drag(-5)
	v.Release()

	start := time.Unix(100, 0)
	v.Tick(start)
	v.Tick(start.Add(30 * time.Millisecond))
	if math.Abs(v.Offset()-(-5-20)) > 1e-9 {
		t.Fatalf("expected offset -25, got %v", v.Offset())
	}
	if v.Speed() != -5 {
		t.Fatalf("expected undamped velocity, got %v", v.Speed())
	}
}

func TestDragClampsAndCancelsVelocity(t *testing.T) {
	v := newScroller(1000, 400)
	v.Press()
	if v.Drag(30) {
		t.Fatalf("dragging past the top must not move")
	}
	if v.Offset() != 0 || v.Speed() != 0 {
		t.Fatalf("expected clamp at 0, got offset=%v speed=%v", v.Offset(), v.Speed())
	}
	v.Release()
	if v.Phase() != Idle {
		t.Fatalf("expected idle after clamped release, got %v", v.Phase())
	}

	v.Press()
	v.Drag(-900)
	if v.Offset() != -600 {
		t.Fatalf("expected clamp at -600, got %v", v.Offset())
	}
}

func TestCoastingStopsAtLimit(t *testing.T) {
	v := newScroller(500, 400)
	v.Press()
	v.Drag(-60)
	v.Release()

	start := time.Unix(100, 0)
	v.Tick(start)
	v.Tick(start.Add(10 * time.Millisecond))
	if v.Offset() != -100 {
		t.Fatalf("expected offset clamped to -100, got %v", v.Offset())
	}
	if v.Phase() != Idle || v.Speed() != 0 {
		t.Fatalf("expected idle after hitting the limit")
	}
}

func TestPressCancelsCoasting(t *testing.T) {
	v := newScroller(10000, 400)
	v.Press()
	v.Drag(-50)
	v.Release()
	v.Tick(time.Unix(100, 0))

	v.Press()
	if v.Speed() != 0 || v.Phase() != Dragging {
		t.Fatalf("expected press to cancel velocity")
	}
	if v.Tick(time.Unix(101, 0)) {
		t.Fatalf("tick while dragging must not move")
	}
}

func TestScrollByAndBounds(t *testing.T) {
	v := newScroller(1000, 400)
	if !v.ScrollBy(-100) || v.Offset() != -100 || v.Phase() != Idle {
		t.Fatalf("unexpected state after ScrollBy: %v %v", v.Offset(), v.Phase())
	}
	if !v.SetBounds(450, 400) || v.Offset() != -50 {
		t.Fatalf("expected shrink to re-clamp, got %v", v.Offset())
	}
	if !v.SetBounds(300, 400) || v.Offset() != 0 {
		t.Fatalf("expected content smaller than viewport to pin offset to 0, got %v", v.Offset())
	}
	if v.ScrollBy(-10) {
		t.Fatalf("expected no movement without scrollable content")
	}
}

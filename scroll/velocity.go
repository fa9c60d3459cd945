// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/velocity.go
// Summary: Kinetic scrolling state with frame-rate independent decay.

package scroll

import (
	"math"
	"time"
)

// Phase is the scroll gesture state.
type Phase uint8

const (
	Idle Phase = iota
	Dragging
	Coasting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Coasting:
		return "coasting"
	default:
		return "unknown"
	}
}

// Params tunes the decay. Velocity is multiplied by Friction once per
// Interval of elapsed time.
type Params struct {
	Interval time.Duration
	Friction float64
}

// Velocity tracks a scroll offset in pixels. The offset is never positive and
// never below -(content - viewport).
type Velocity struct {
	params   Params
	offset   float64
	velocity float64
	phase    Phase
	lastTick time.Time
	clamped  bool

	content, viewport float64
}

// New returns an idle scroller at offset 0.
func New(params Params) *Velocity {
	return &Velocity{params: params}
}

// SetParams replaces the decay parameters.
func (v *Velocity) SetParams(params Params) {
	v.params = params
}

// Offset returns the current scroll offset.
func (v *Velocity) Offset() float64 { return v.offset }

// Speed returns the recorded velocity in pixels per interval.
func (v *Velocity) Speed() float64 { return v.velocity }

// Phase returns the gesture state.
func (v *Velocity) Phase() Phase { return v.phase }

// Moving reports whether Tick can still change the offset.
func (v *Velocity) Moving() bool {
	return v.phase == Coasting && v.velocity != 0
}

// SetBounds updates the scrollable extent. A shrunk extent re-clamps the
// offset and cancels any velocity. It reports whether the offset moved.
func (v *Velocity) SetBounds(content, viewport float64) bool {
	v.content, v.viewport = content, viewport
	if v.clamp() {
		v.stop()
		return true
	}
	return false
}

// Press starts a touch sequence, cancelling any coasting.
func (v *Velocity) Press() {
	v.velocity = 0
	v.clamped = false
	v.lastTick = time.Time{}
	v.phase = Dragging
}

// Drag moves the offset by delta pixels and records delta as the velocity.
// Hitting either end zeroes the velocity. It reports whether the offset moved.
func (v *Velocity) Drag(delta float64) bool {
	if v.phase != Dragging {
		v.Press()
	}
	old := v.offset
	v.offset += delta
	v.velocity = delta
	v.clamped = v.clamp()
	if v.clamped {
		v.velocity = 0
	}
	return v.offset != old
}

// Release ends the touch sequence. The content coasts unless the last drag
// hit a limit.
func (v *Velocity) Release() {
	if v.phase != Dragging {
		return
	}
	if v.clamped {
		v.phase = Idle
		v.stop()
		return
	}
	v.phase = Coasting
	v.lastTick = time.Time{}
}

// ScrollBy applies a discrete pointer scroll immediately and cancels coasting.
func (v *Velocity) ScrollBy(delta float64) bool {
	old := v.offset
	v.offset += delta
	v.clamp()
	v.stop()
	return v.offset != old
}

// Tick advances coasting to now. The first tick after a release only records
// the time. Later ticks apply n = elapsed/interval steps of the geometric
// series in closed form, so the distance travelled does not depend on how
// often Tick runs. It reports whether the offset moved.
func (v *Velocity) Tick(now time.Time) bool {
	if v.phase != Coasting {
		return false
	}
	if v.velocity == 0 {
		v.stop()
		return false
	}
	if v.lastTick.IsZero() {
		v.lastTick = now
		return false
	}

	interval := v.params.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	n := float64(now.Sub(v.lastTick)) / float64(interval)
	v.lastTick = now
	if n <= 0 {
		return false
	}

	f := v.params.Friction
	old := v.offset
	if f == 1 {
		v.offset += v.velocity * (n + 1)
	} else {
		v.offset += v.velocity * (1 - math.Pow(f, n+1)) / (1 - f)
	}
	v.velocity *= math.Pow(f, n)

	if v.clamp() || math.Abs(v.velocity) <= 1 {
		v.stop()
	}
	return v.offset != old
}

func (v *Velocity) stop() {
	v.velocity = 0
	v.lastTick = time.Time{}
	if v.phase != Dragging {
		v.phase = Idle
	}
}

// clamp pins the offset to [-(content - viewport), 0] and reports whether it
// had to.
func (v *Velocity) clamp() bool {
	lower := -(v.content - v.viewport)
	if lower > 0 {
		lower = 0
	}
	clamped := math.Max(lower, math.Min(0, v.offset))
	if clamped == v.offset {
		return false
	}
	v.offset = clamped
	return true
}

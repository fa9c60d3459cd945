// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"image"
	"testing"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		width   int
		scale   float64
		columns int
		padding int
		cell    int
	}{
		{480, 1, 4, 19, 96},
		{1080, 1, 10, 10, 96},
		{480, 2, 2, 32, 192},
		{50, 1, 1, 0, 96},
	}
	for _, tt := range tests {
		g := New(tt.width, 800, tt.scale)
		if g.Columns != tt.columns || g.Padding != tt.padding || g.CellWidth != tt.cell {
			t.Errorf("New(%d, %v): got columns=%d padding=%d cell=%d, want %d/%d/%d",
				tt.width, tt.scale, g.Columns, g.Padding, g.CellWidth, tt.columns, tt.padding, tt.cell)
		}
	}
}

func TestOriginReservedSlots(t *testing.T) {
	g := New(480, 800, 1)
	if got := g.Origin(0); got != image.Pt(19, 19) {
		t.Errorf("poweroff origin %v", got)
	}
	if got := g.Origin(1); got != image.Pt(192, 19) {
		t.Errorf("config origin %v", got)
	}
	if got := g.Origin(2); got != image.Pt(480-19-96, 19) {
		t.Errorf("reboot origin %v", got)
	}
	if got := g.Origin(3); got != image.Pt(19, 112+19+19) {
		t.Errorf("first entry origin %v", got)
	}
	if got := g.Origin(3 + 4 + 1); got != image.Pt(96+19+19, 2*(112+19)+19) {
		t.Errorf("second row origin %v", got)
	}
}

func TestNewTinyScale(t *testing.T) {
	g := New(800, 600, 0.004)
	if g.CellWidth < 1 || g.CellHeight < 1 || g.IconSize < 1 {
		t.Fatalf("expected cells of at least one pixel, got %+v", g)
	}
	if g.Columns < 1 {
		t.Fatalf("expected at least one column, got %d", g.Columns)
	}
	o := g.Origin(5)
	if got, ok := g.HitTest(float64(o.X), float64(o.Y)); !ok || got != 5 {
		t.Fatalf("HitTest(%v) = %d, %v; want 5", o, got, ok)
	}
	if g.TotalHeight(20) <= 0 {
		t.Fatalf("expected positive content height")
	}
}

func TestHitTestRoundTrip(t *testing.T) {
	for _, width := range []int{300, 480, 1080} {
		for _, scale := range []float64{1, 1.5, 2} {
			g := New(width, 800, scale)
			for i := 0; i < 60; i++ {
				if i < reserved && g.Columns < reserved {
					continue
				}
				o := g.Origin(i)
				for _, p := range []image.Point{o, o.Add(image.Pt(g.CellWidth-1, g.CellHeight-1))} {
					got, ok := g.HitTest(float64(p.X), float64(p.Y))
					if !ok || got != i {
						t.Fatalf("width=%d scale=%v: HitTest(%v) = %d, %v; want %d", width, scale, p, got, ok, i)
					}
				}
			}
		}
	}
}

func TestHitTestMisses(t *testing.T) {
	g := New(480, 800, 1)
	tests := []struct {
		name string
		x, y float64
	}{
		{"negative", -5, 200},
		{"top padding", 50, 5},
		{"between builtins", 150, 50},
		{"column padding", 19 + 96 + 5, 200},
		{"row padding", 50, 19 + 112 + 5},
		{"past last column", 479, 200},
	}
	for _, tt := range tests {
		if i, ok := g.HitTest(tt.x, tt.y); ok {
			t.Errorf("%s: expected miss, got %d", tt.name, i)
		}
	}
}

func TestTotalHeight(t *testing.T) {
	g := New(480, 800, 1)
	row := 112 + 19
	tests := []struct {
		count int
		rows  int
	}{
		{0, 1},
		{3, 1},
		{4, 2},
		{7, 2},
		{8, 3},
	}
	for _, tt := range tests {
		if got, want := g.TotalHeight(tt.count), row*tt.rows+19; got != want {
			t.Errorf("TotalHeight(%d) = %d, want %d", tt.count, got, want)
		}
	}
	if g.MaxScroll(3) != 0 {
		t.Errorf("expected no scroll for a single row")
	}
	if got := g.MaxScroll(3 + 4*10); got != float64(row*11+19-800) {
		t.Errorf("unexpected max scroll %v", got)
	}
}

func TestVisible(t *testing.T) {
	g := New(480, 800, 1)
	for y, want := range map[int]bool{-113: false, -112: true, 0: true, 799: true, 800: false} {
		if got := g.Visible(y); got != want {
			t.Errorf("Visible(%d) = %v, want %v", y, got, want)
		}
	}
}

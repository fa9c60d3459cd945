// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	loadErr = nil
}

func TestSystemDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if cfg.GetString(SectionFont, "family", "") == "" {
		t.Fatalf("expected font family to be set")
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if disk.Section(SectionInput) == nil {
		t.Fatalf("expected input section to be present")
	}
}

func TestBrokenFileKeepsPreviousConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()
	_ = System()

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"font": {"family": "Go", "size": 20}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Reload(); err == nil {
		t.Fatalf("expected parse error")
	}
	if Err() == nil {
		t.Fatalf("expected Err to report the parse failure")
	}
	if got := System().GetFloat(SectionFont, "size", 0); got != 20 {
		t.Fatalf("expected previous font size 20, got %v", got)
	}
}

func TestBrokenFileAtStartupUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetStore()

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got, want := LauncherFrom(System()), DefaultLauncher(); got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
	if Err() == nil {
		t.Fatalf("expected Err to report the parse failure")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "{not json" {
		t.Fatalf("broken file was overwritten: %q", data)
	}
}

func TestLauncherFrom(t *testing.T) {
	cfg := Config{
		SectionColors: map[string]interface{}{"background": "#102030"},
		SectionInput: map[string]interface{}{
			"velocity_interval_ms": 16,
			"velocity_friction":    3.0,
		},
		SectionCache: map[string]interface{}{"max_entries": -1},
	}
	l := LauncherFrom(cfg)

	if l.Colors.Background != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Errorf("unexpected background %v", l.Colors.Background)
	}
	if l.Colors.Foreground != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("unexpected foreground %v", l.Colors.Foreground)
	}
	if l.Input.VelocityInterval != 16*time.Millisecond {
		t.Errorf("expected 16ms interval, got %v", l.Input.VelocityInterval)
	}
	if l.Input.VelocityFriction != 0.85 {
		t.Errorf("expected out of range friction to fall back, got %v", l.Input.VelocityFriction)
	}
	if l.CacheSize != 512 {
		t.Errorf("expected cache size fallback, got %d", l.CacheSize)
	}
	if l.Font.Family != "Sans" || l.Font.Size != 12 {
		t.Errorf("unexpected font %+v", l.Font)
	}
}

func TestDefaultLauncherMatchesEmbedded(t *testing.T) {
	embedded := defaultSystemConfig()
	if embedded == nil {
		t.Fatalf("embedded defaults missing")
	}
	if got, want := LauncherFrom(embedded), DefaultLauncher(); got != want {
		t.Fatalf("embedded defaults %+v differ from fallbacks %+v", got, want)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()
	_ = System()

	path, _ := systemConfigPath()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, func(cfg Config) { changed <- cfg })
	}()

	data := []byte(`{"font": {"family": "Go", "size": 18}}`)
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-changed:
			if cfg.GetFloat(SectionFont, "size", 0) != 18 {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Watch: %v", err)
			}
			return
		case <-tick.C:
			// Rewrite until the watcher is registered and observes a write.
			if err := os.WriteFile(filepath.Clean(path), data, 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
		case <-deadline:
			t.Fatalf("watcher did not report the change")
		}
	}
}

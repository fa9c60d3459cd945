// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Desktop entry catalog merged across XDG data directories.
// Usage: Build(DefaultRoots()) scans */applications/*.desktop and the icon themes.

package registry

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/framegrace/tapgrid/icons"
)

// ErrBuiltin is returned when toggling an entry that has no backing file.
var ErrBuiltin = errors.New("built-in entries cannot be hidden")

// ActionKind selects what tapping an entry does.
type ActionKind uint8

const (
	ActionRun ActionKind = iota
	ActionPoweroff
	ActionReboot
	ActionToggleConfig
)

// Action is the tap behaviour of an entry. Command is only set for ActionRun.
type Action struct {
	Kind    ActionKind
	Command string
}

// Entry is one cell of the launcher grid.
type Entry struct {
	Name     string
	Action   Action
	IconName string
	// HiddenMarkers are the files whose NoDisplay=true currently hides the entry.
	HiddenMarkers []string
	// Filename is the .desktop base name used to merge entries across roots.
	Filename string
}

// Hidden reports whether any marker hides the entry.
func (e *Entry) Hidden() bool {
	return len(e.HiddenMarkers) > 0
}

// Builtin reports whether the entry is one of the fixed leading actions.
func (e *Entry) Builtin() bool {
	return e.Action.Kind != ActionRun
}

// Registry holds the merged entries and the icon index built alongside them.
type Registry struct {
	mu      sync.RWMutex
	roots   Roots
	entries []*Entry
	index   *icons.Index
}

// Build scans roots and returns the populated catalog. Missing or unreadable
// directories and files contribute nothing.
func Build(roots Roots) *Registry {
	r := &Registry{roots: roots}
	r.Rescan()
	return r
}

// Rescan rebuilds entries and icon index from the same roots.
func (r *Registry) Rescan() {
	entries := scan(r.roots)
	index := icons.BuildIndex(r.roots.DataDirs(), r.roots.Pixmaps)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = entries
	r.index = index
	log.Printf("Registry: Loaded %d entries, %d hidden", len(entries)-BuiltInCount, countHidden(entries))
}

func scan(roots Roots) []*Entry {
	merged := make(map[string]*Entry)
	for _, dir := range roots.scanOrder() {
		files, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, file := range files {
			name := file.Name()
			if !strings.HasSuffix(name, ".desktop") {
				continue
			}
			if t := file.Type(); !t.IsRegular() && t&os.ModeSymlink == 0 {
				continue
			}
			path := filepath.Join(dir, name)
			df, err := LoadDesktopFile(path)
			if err != nil {
				continue
			}
			mergeFile(merged, name, path, df)
		}
	}

	user := make([]*Entry, 0, len(merged))
	for _, e := range merged {
		user = append(user, e)
	}
	sort.Slice(user, func(i, j int) bool {
		if user[i].Name != user[j].Name {
			return user[i].Name < user[j].Name
		}
		return user[i].Filename < user[j].Filename
	})
	return append(builtIns(), user...)
}

// mergeFile folds one description file into the entries seen so far. A
// hidden file adds a marker; a visible file with Exec overrides the entry and
// clears its markers; a visible file without Exec removes the entry.
func mergeFile(merged map[string]*Entry, filename, path string, df DesktopFile) {
	existing := merged[filename]

	if df.NoDisplay {
		if existing == nil {
			if !df.HasName || !df.HasExec {
				return
			}
			existing = &Entry{Filename: filename, Action: Action{Kind: ActionRun}}
			merged[filename] = existing
		}
		if df.HasName {
			existing.Name = df.Name
		}
		if df.HasIcon {
			existing.IconName = df.Icon
		}
		if df.HasExec {
			existing.Action.Command = df.Exec
		}
		existing.HiddenMarkers = append(existing.HiddenMarkers, path)
		return
	}

	if !df.HasExec {
		delete(merged, filename)
		return
	}
	if existing == nil {
		if !df.HasName {
			return
		}
		existing = &Entry{Filename: filename, Action: Action{Kind: ActionRun}}
		merged[filename] = existing
	}
	if df.HasName {
		existing.Name = df.Name
	}
	existing.IconName = df.Icon
	existing.Action.Command = df.Exec
	existing.HiddenMarkers = nil
}

// All returns every entry, built-ins first, hidden ones included.
func (r *Registry) All() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Entry(nil), r.entries...)
}

// Len returns the number of entries including hidden ones.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Get returns the entry at index in All order, or nil.
func (r *Registry) Get(index int) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.entries) {
		return nil
	}
	return r.entries[index]
}

// Visible yields the entries that are not hidden, in order.
func (r *Registry) Visible() iter.Seq[*Entry] {
	entries := r.All()
	return func(yield func(*Entry) bool) {
		for _, e := range entries {
			if e.Hidden() {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// VisibleLen counts the entries Visible yields.
func (r *Registry) VisibleLen() int {
	n := 0
	for range r.Visible() {
		n++
	}
	return n
}

// Grid returns what the grid shows: everything while configuring, otherwise
// the visible entries.
func (r *Registry) Grid(showHidden bool) []*Entry {
	if showHidden {
		return r.All()
	}
	out := make([]*Entry, 0, r.Len())
	for e := range r.Visible() {
		out = append(out, e)
	}
	return out
}

// IndexOf returns the All position of e, or -1.
func (r *Registry) IndexOf(e *Entry) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, candidate := range r.entries {
		if candidate == e {
			return i
		}
	}
	return -1
}

// ToggleHidden flips the hidden state of the entry at index (All order).
// Hiding writes a marker into the user application directory; unhiding strips
// every marker. Markers that could not be cleared stay recorded, and the
// combined error is returned so the caller can drop the entry.
func (r *Registry) ToggleHidden(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.entries) {
		return fmt.Errorf("entry index %d out of range", index)
	}
	e := r.entries[index]
	if e.Builtin() {
		return ErrBuiltin
	}

	if !e.Hidden() {
		dir := r.roots.userApplications()
		if dir == "" {
			return fmt.Errorf("hide %s: no user data directory", e.Filename)
		}
		path := filepath.Join(dir, e.Filename)
		if err := addMarker(path); err != nil {
			return fmt.Errorf("hide %s: %w", e.Filename, err)
		}
		e.HiddenMarkers = []string{path}
		log.Printf("Registry: Hid '%s' via %s", e.Name, path)
		return nil
	}

	var result *multierror.Error
	var remaining []string
	for _, path := range e.HiddenMarkers {
		if err := stripMarker(path); err != nil {
			result = multierror.Append(result, err)
			remaining = append(remaining, path)
		}
	}
	e.HiddenMarkers = remaining
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("unhide %s: %w", e.Filename, err)
	}
	log.Printf("Registry: Restored '%s'", e.Name)
	return nil
}

// Remove drops the entry at index (All order). Built-ins are kept.
func (r *Registry) Remove(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < BuiltInCount || index >= len(r.entries) {
		return
	}
	log.Printf("Registry: Removed '%s'", r.entries[index].Name)
	r.entries = append(r.entries[:index], r.entries[index+1:]...)
}

// Index returns the icon index built with the catalog.
func (r *Registry) Index() *icons.Index {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

// Icon returns the identity to draw for e at the given pixel size. Hidden
// entries show the hidden artwork while configuring; unresolvable names fall
// back to the placeholder.
func (r *Registry) Icon(e *Entry, size int, showHidden bool) icons.Icon {
	switch e.Action.Kind {
	case ActionPoweroff:
		return icons.Poweroff
	case ActionReboot:
		return icons.Reboot
	case ActionToggleConfig:
		return icons.Config
	}
	if showHidden && e.Hidden() {
		return icons.Hidden
	}
	if e.IconName == "" {
		return icons.Placeholder
	}
	icon, err := r.Index().Resolve(e.IconName, size)
	if err != nil {
		return icons.Placeholder
	}
	return icon
}

func countHidden(entries []*Entry) int {
	n := 0
	for _, e := range entries {
		if e.Hidden() {
			n++
		}
	}
	return n
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/roots.go
// Summary: XDG data directories searched for applications and icons.

package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/framegrace/tapgrid/icons"
)

// Roots lists the data directories to search. System is in XDG order, most
// important first; User outranks all of them.
type Roots struct {
	User    string
	System  []string
	Pixmaps string
}

// DefaultRoots reads XDG_DATA_HOME and XDG_DATA_DIRS, falling back to the
// XDG defaults.
func DefaultRoots() Roots {
	user := os.Getenv("XDG_DATA_HOME")
	if !filepath.IsAbs(user) {
		user = ""
		if home, err := os.UserHomeDir(); err == nil {
			user = filepath.Join(home, ".local", "share")
		}
	}

	var system []string
	for _, dir := range strings.Split(os.Getenv("XDG_DATA_DIRS"), ":") {
		if filepath.IsAbs(dir) {
			system = append(system, dir)
		}
	}
	if len(system) == 0 {
		system = []string{"/usr/local/share", "/usr/share"}
	}

	return Roots{User: user, System: system, Pixmaps: icons.DefaultPixmapsDir}
}

// DataDirs returns every root, most important first.
func (r Roots) DataDirs() []string {
	dirs := make([]string, 0, len(r.System)+1)
	if r.User != "" {
		dirs = append(dirs, r.User)
	}
	return append(dirs, r.System...)
}

// scanOrder returns the application directories from lowest to highest
// priority, so later files override earlier ones.
func (r Roots) scanOrder() []string {
	dirs := r.DataDirs()
	out := make([]string, 0, len(dirs))
	for i := len(dirs) - 1; i >= 0; i-- {
		out = append(out, filepath.Join(dirs[i], "applications"))
	}
	return out
}

func (r Roots) userApplications() string {
	if r.User == "" {
		return ""
	}
	return filepath.Join(r.User, "applications")
}

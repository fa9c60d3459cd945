// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package icons

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func touch(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func theme(t *testing.T, root, name, inherits string) {
	t.Helper()
	touch(t, filepath.Join(root, "icons", name, "index.theme"),
		"[Icon Theme]\nName="+name+"\nInherits="+inherits+"\n\n[16x16/apps]\nSize=16\nInherits=bogus\n")
}

func TestThemeChainFollowsInheritsAcrossRoots(t *testing.T) {
	user, system := t.TempDir(), t.TempDir()
	theme(t, user, "default", "Adwaita")
	theme(t, system, "default", "breeze, Adwaita")
	theme(t, system, "Adwaita", "hicolor")
	theme(t, system, "hicolor", "default")

	got := themeChain([]string{user, system})
	want := []string{"default", "Adwaita", "breeze", "hicolor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected chain %v, got %v", want, got)
	}
}

func TestThemeChainAppendsHicolor(t *testing.T) {
	root := t.TempDir()
	theme(t, root, "default", "Papirus")

	got := themeChain([]string{root})
	want := []string{"default", "Papirus", "hicolor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected chain %v, got %v", want, got)
	}
	if got := themeChain(nil); !reflect.DeepEqual(got, []string{"default", "hicolor"}) {
		t.Fatalf("expected bare chain, got %v", got)
	}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		dir  string
		want Class
		ok   bool
	}{
		{"48x48", Class{Kind: ClassSized, Size: 48}, true},
		{"32x32@2", Class{Kind: ClassSized, Size: 64}, true},
		{"scalable", Class{Kind: ClassScalable}, true},
		{"symbolic", Class{Kind: ClassSymbolic}, true},
		{"48x32", Class{}, false},
		{"apps", Class{}, false},
		{"x48", Class{}, false},
		{"16x16@0", Class{}, false},
	}
	for _, tt := range tests {
		got, ok := parseClass(tt.dir)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseClass(%q) = %v, %v; want %v, %v", tt.dir, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolvePrefersExactThenScalable(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "icons", "hicolor")
	exact := touch(t, filepath.Join(base, "64x64", "apps", "term.png"), "")
	touch(t, filepath.Join(base, "48x48", "apps", "term.png"), "")
	vector := touch(t, filepath.Join(base, "scalable", "apps", "term.svg"), "")
	touch(t, filepath.Join(base, "symbolic", "apps", "term-symbolic.svg"), "")

	idx := BuildIndex([]string{root}, "")

	got, err := idx.Resolve("term", 64)
	if err != nil || got != File(exact) {
		t.Fatalf("expected exact match %s, got %v (%v)", exact, got, err)
	}
	got, err = idx.Resolve("term", 128)
	if err != nil || got != File(vector) {
		t.Fatalf("expected scalable %s, got %v (%v)", vector, got, err)
	}
	if got.Format != FormatVector {
		t.Fatalf("expected vector format for %s", got.Path)
	}
}

func TestResolveClosestSizeFavorsLarger(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "icons", "hicolor")
	touch(t, filepath.Join(base, "48x48", "apps", "edit.png"), "")
	larger := touch(t, filepath.Join(base, "80x80", "apps", "edit.png"), "")
	touch(t, filepath.Join(base, "256x256", "apps", "edit.png"), "")

	idx := BuildIndex([]string{root}, "")
	got, err := idx.Resolve("edit", 64)
	if err != nil || got.Path != larger {
		t.Fatalf("expected %s, got %v (%v)", larger, got, err)
	}
}

func TestResolveSymbolicIsLastResort(t *testing.T) {
	root, pixmaps := t.TempDir(), t.TempDir()
	base := filepath.Join(root, "icons", "hicolor")
	symbolic := touch(t, filepath.Join(base, "symbolic", "apps", "mail-symbolic.svg"), "")
	touch(t, filepath.Join(base, "symbolic", "apps", "notes.svg"), "")
	touch(t, filepath.Join(pixmaps, "mail.png"), "")

	idx := BuildIndex([]string{root}, pixmaps)
	got, err := idx.Resolve("mail", 64)
	if err != nil || got.Path != symbolic {
		t.Fatalf("expected symbolic %s, got %v (%v)", symbolic, got, err)
	}
	if _, err := idx.Resolve("notes", 64); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected symbolic files without suffix to be ignored, got %v", err)
	}
}

func TestResolveFirstThemeClaimsName(t *testing.T) {
	user, system := t.TempDir(), t.TempDir()
	theme(t, system, "default", "Adwaita")
	small := touch(t, filepath.Join(system, "icons", "Adwaita", "48x48", "apps", "files.png"), "")
	touch(t, filepath.Join(system, "icons", "hicolor", "64x64", "apps", "files.png"), "")
	userSymbolic := touch(t, filepath.Join(user, "icons", "Adwaita", "symbolic", "places", "files-symbolic.svg"), "")

	idx := BuildIndex([]string{user, system}, "")
	if owner := idx.Theme("files"); owner != "Adwaita" {
		t.Fatalf("expected Adwaita to own files, got %q", owner)
	}
	got, err := idx.Resolve("files", 64)
	if err != nil || got.Path != small {
		t.Fatalf("expected owning theme's 48px icon %s, got %v (%v)", small, got, err)
	}
	if c := idx.icons["files"]; c.paths[Class{Kind: ClassSymbolic}] != userSymbolic {
		t.Fatalf("expected symbolic from the same theme in another root to be kept, got %v", c.paths)
	}
}

func TestResolveScaledDirectory(t *testing.T) {
	root := t.TempDir()
	hidpi := touch(t, filepath.Join(root, "icons", "hicolor", "32x32@2", "apps", "calc.png"), "")
	touch(t, filepath.Join(root, "icons", "hicolor", "48x48", "apps", "calc.png"), "")

	idx := BuildIndex([]string{root}, "")
	got, err := idx.Resolve("calc", 64)
	if err != nil || got.Path != hidpi {
		t.Fatalf("expected @2 directory to count as 64px, got %v (%v)", got, err)
	}
}

func TestResolvePixmapsFallback(t *testing.T) {
	root, pixmaps := t.TempDir(), t.TempDir()
	themed := touch(t, filepath.Join(root, "icons", "hicolor", "64x64", "apps", "vim.png"), "")
	touch(t, filepath.Join(pixmaps, "vim.png"), "")
	legacy := touch(t, filepath.Join(pixmaps, "xterm.png"), "")
	vector := touch(t, filepath.Join(pixmaps, "xterm.svg"), "")
	touch(t, filepath.Join(pixmaps, "xterm.xpm"), "")

	idx := BuildIndex([]string{root}, pixmaps)
	if got, _ := idx.Resolve("vim", 64); got.Path != themed {
		t.Fatalf("expected theme to beat pixmaps, got %v", got)
	}
	if got, _ := idx.Resolve("xterm", 64); got.Path != vector {
		t.Fatalf("expected pixmaps svg %s, got %v", vector, got)
	}
	if c := idx.icons["xterm"]; c.paths[Class{Kind: ClassBitmap}] != legacy {
		t.Fatalf("expected unsized bitmap candidate, got %v", c.paths)
	}
}

func TestResolveAbsoluteAndMissing(t *testing.T) {
	idx := BuildIndex(nil, "")
	got, err := idx.Resolve("/opt/app/icon.svg", 64)
	if err != nil || got != File("/opt/app/icon.svg") || got.Format != FormatVector {
		t.Fatalf("expected absolute path passthrough, got %v (%v)", got, err)
	}
	if _, err := idx.Resolve("nonexistent-name", 64); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := idx.Resolve("", 64); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty name, got %v", err)
	}
}

func TestResolvedPathsStayInsideChain(t *testing.T) {
	root := t.TempDir()
	theme(t, root, "default", "Papirus")
	touch(t, filepath.Join(root, "icons", "Papirus", "64x64", "apps", "a.png"), "")
	touch(t, filepath.Join(root, "icons", "hicolor", "scalable", "apps", "b.svg"), "")
	touch(t, filepath.Join(root, "icons", "Orphan", "64x64", "apps", "c.png"), "")

	idx := BuildIndex([]string{root}, "")
	chain := idx.Themes()
	for _, name := range []string{"a", "b", "c"} {
		icon, err := idx.Resolve(name, 64)
		if err != nil {
			if name == "c" && errors.Is(err, ErrNotFound) {
				continue
			}
			t.Fatalf("resolve %s: %v", name, err)
		}
		inChain := false
		for _, th := range chain {
			if strings.HasPrefix(icon.Path, filepath.Join(root, "icons", th)+string(filepath.Separator)) {
				inChain = true
			}
		}
		if !inChain {
			t.Errorf("%s resolved outside chain %v: %s", name, chain, icon.Path)
		}
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 indexed names, got %d", idx.Len())
	}
}

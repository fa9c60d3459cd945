// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: icons/icon.go
// Summary: Icon identities used as render cache keys.

package icons

import (
	"path/filepath"
	"strings"
)

// Kind distinguishes file-backed icons from the built-in artwork.
type Kind uint8

const (
	KindFile Kind = iota
	KindPoweroff
	KindReboot
	KindConfig
	KindHidden
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindPoweroff:
		return "poweroff"
	case KindReboot:
		return "reboot"
	case KindConfig:
		return "config"
	case KindHidden:
		return "hidden"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Format is the decoder family of an icon file.
type Format uint8

const (
	FormatBitmap Format = iota
	FormatVector
)

// Icon identifies an icon without holding pixel data. Icons are comparable
// and are equal when kind and path match; Format is a function of the path.
type Icon struct {
	Kind   Kind
	Path   string
	Format Format
}

var (
	Poweroff    = Icon{Kind: KindPoweroff, Format: FormatVector}
	Reboot      = Icon{Kind: KindReboot, Format: FormatVector}
	Config      = Icon{Kind: KindConfig, Format: FormatVector}
	Hidden      = Icon{Kind: KindHidden, Format: FormatVector}
	Placeholder = Icon{Kind: KindPlaceholder, Format: FormatVector}
)

// File returns the identity of an icon file. The format is decided here, once,
// from the extension.
func File(path string) Icon {
	return Icon{Kind: KindFile, Path: path, Format: formatOf(path)}
}

// IsBuiltin reports whether the icon is rendered from embedded artwork.
func (i Icon) IsBuiltin() bool {
	return i.Kind != KindFile
}

func (i Icon) String() string {
	if i.Kind == KindFile {
		return i.Path
	}
	return "builtin:" + i.Kind.String()
}

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatVector
	}
	return FormatBitmap
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: icons/errors.go
// Summary: Icon resolution and decoding errors.

package icons

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no theme or pixmap provides an icon name.
var ErrNotFound = errors.New("icon not found")

// DecodeError reports malformed image data.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode icon %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tapgrid/logging.go
// Summary: Routes the standard logger through a tint slog handler.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/framegrace/tapgrid/config"
)

const logFileName = "tapgrid.log"

// setupLogging installs the default slog handler. Package code keeps using
// log.Printf, which slog.SetDefault redirects here at info level. Verbose
// also lets debug records through.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.StampMilli,
		NoColor:    noColor,
	})))
}

// openLogFile appends to tapgrid.log in the configuration directory.
func openLogFile() (*os.File, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

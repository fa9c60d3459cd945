// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Hot reload of tapgrid.json through fsnotify.

package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads tapgrid.json whenever it changes on disk and hands the fresh
// config to onChange. The directory is watched rather than the file because
// editors usually replace the file on save. Watch blocks until ctx is done.
func Watch(ctx context.Context, onChange func(Config)) error {
	path, err := systemConfigPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := Reload(); err != nil {
				continue
			}
			if onChange != nil {
				onChange(Clone(System()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config: Watcher error: %v", err)
		}
	}
}

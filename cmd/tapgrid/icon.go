// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tapgrid/icon.go
// Summary: Resolves and rasterizes one icon to a PNG file.

package main

import (
	"errors"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"github.com/framegrace/tapgrid/grid"
	"github.com/framegrace/tapgrid/icons"
)

func newIconCommand(opts *options) *cobra.Command {
	var (
		size int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "icon NAME",
		Short: "Resolve an icon name through the theme chain and write it as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			if size <= 0 {
				return fmt.Errorf("invalid size %d", size)
			}

			settings := loadSettings()
			roots := opts.roots(settings)
			index := icons.BuildIndex(roots.DataDirs(), roots.Pixmaps)
			icon, err := index.Resolve(args[0], size)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			img, err := icons.Loader{}.Load(icon, size)
			if err != nil {
				return fmt.Errorf("load %s: %w", icon, err)
			}
			if err := gg.NewContextForRGBA(img).SavePNG(out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", args[0], out, icon)
			return nil
		},
	}
	cmd.Flags().IntVarP(&size, "size", "s", grid.IconSize, "Icon size in pixels")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PNG file")
	return cmd
}

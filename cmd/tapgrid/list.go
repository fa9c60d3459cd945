// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tapgrid/list.go
// Summary: Prints the merged catalog in grid order.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/framegrace/tapgrid/registry"
)

func newListCommand(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the entries the launcher would show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadSettings()
			reg := registry.Build(opts.roots(settings))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i, e := range reg.Grid(all) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, e.Name, describe(e), iconName(e))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden entries")
	return cmd
}

func describe(e *registry.Entry) string {
	var s string
	switch e.Action.Kind {
	case registry.ActionPoweroff:
		s = "<power off>"
	case registry.ActionReboot:
		s = "<reboot>"
	case registry.ActionToggleConfig:
		s = "<configure>"
	default:
		s = e.Action.Command
	}
	if e.Hidden() {
		s += " (hidden)"
	}
	return s
}

func iconName(e *registry.Entry) string {
	if e.IconName == "" {
		return "-"
	}
	return e.IconName
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Entries compiled into the launcher.

package registry

// builtIns returns fresh copies of the fixed leading entries: poweroff, the
// configuration toggle and reboot, in grid order.
func builtIns() []*Entry {
	return []*Entry{
		{Name: "Power Off", Action: Action{Kind: ActionPoweroff}},
		{Name: "Configure", Action: Action{Kind: ActionToggleConfig}},
		{Name: "Reboot", Action: Action{Kind: ActionReboot}},
	}
}

// BuiltInCount is the number of leading built-in entries.
const BuiltInCount = 3

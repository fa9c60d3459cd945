// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/tapgrid/main.go
// Summary: tapgrid command line: interactive launcher plus list and icon helpers.
// Usage: Run `tapgrid` in a terminal, `tapgrid list` or `tapgrid icon NAME --out icon.png`.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/tapgrid/apps/launcher"
	"github.com/framegrace/tapgrid/config"
	"github.com/framegrace/tapgrid/icons"
	"github.com/framegrace/tapgrid/internal/devshell"
	"github.com/framegrace/tapgrid/power"
	"github.com/framegrace/tapgrid/registry"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	dataHome string
	dataDirs []string
	pixmaps  string
	scale    float64
	verbose  bool
}

// roots applies the flag overrides on top of the XDG environment.
func (o *options) roots(settings config.Launcher) registry.Roots {
	roots := registry.DefaultRoots()
	roots.Pixmaps = settings.PixmapsDir
	if o.dataHome != "" {
		roots.User = o.dataHome
	}
	if len(o.dataDirs) > 0 {
		roots.System = o.dataDirs
	}
	if o.pixmaps != "" {
		roots.Pixmaps = o.pixmaps
	}
	return roots
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "tapgrid",
		Short:         "Touch launcher for installed desktop applications",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dataHome, "data-home", "", "User data directory (default: $XDG_DATA_HOME)")
	flags.StringSliceVar(&opts.dataDirs, "data-dirs", nil, "System data directories, most important first (default: $XDG_DATA_DIRS)")
	flags.StringVar(&opts.pixmaps, "pixmaps", "", "Loose icon directory (default: from configuration)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug messages")
	root.Flags().Float64Var(&opts.scale, "scale", 1, "Output scale factor")

	root.AddCommand(newListCommand(opts), newIconCommand(opts))
	return root
}

// loadSettings reads tapgrid.json. An unreadable file leaves the built-in
// defaults in place and is reported once here.
func loadSettings() config.Launcher {
	cfg := config.System()
	if err := config.Err(); err != nil {
		path, _ := config.Path()
		log.Printf("Config: Using built-in settings, %s is unusable: %v", path, err)
	}
	settings := config.LauncherFrom(cfg)
	slog.Debug("Config: Settings loaded", "font", settings.Font.Family, "cache", settings.CacheSize)
	return settings
}

// runInteractive shows the grid in the terminal and starts the tapped entry
// once the screen has been released.
func runInteractive(ctx context.Context, opts *options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode needs a terminal; try 'tapgrid list'")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logFile, err := openLogFile()
	if err != nil {
		log.Printf("Tapgrid: Logging disabled while the screen is active: %v", err)
		setupLogging(nopWriter{}, false)
	} else {
		defer logFile.Close()
		setupLogging(logFile, opts.verbose)
	}

	settings := loadSettings()
	reg := registry.Build(opts.roots(settings))
	l := launcher.New(reg, icons.Loader{}, power.NewLogind(), settings)
	l.SetScale(opts.scale)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	updates := make(chan config.Launcher, 1)
	go func() {
		err := config.Watch(ctx, func(cfg config.Config) {
			select {
			case <-updates:
			default:
			}
			updates <- config.LauncherFrom(cfg)
		})
		if err != nil {
			log.Printf("Config: Hot reload unavailable: %v", err)
		}
	}()

	decision, err := devshell.Run(l, devshell.Options{Updates: updates})
	if err != nil {
		return err
	}
	if decision.Kind != launcher.Launch {
		return nil
	}
	return launcher.Spawn(decision.Command)
}

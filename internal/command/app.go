// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/staranto/prefcache/internal/config"
	"github.com/staranto/prefcache/internal/memcache"
	"github.com/staranto/prefcache/internal/meta"
	"github.com/urfave/cli/v3"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// The arg[1] immediately following the binary (arg[0]) is the prefctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	meta := meta.Meta{
		Args:     args,
		Config:   cfg,
		Context:  ctx,
		Settings: settings,
		Registry: memcache.NewRegistry(memcache.Config{
			Size: settings.CacheSize,
			TTL:  settings.CacheTTL,
		}),
	}

	app := &cli.Command{
		Name:  "prefctl",
		Usage: "Preferences Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "prefctl version info",
				HideDefault: true,
			},
		},
	}

	storeFlags := NewStoreFlags(settings)
	app.Commands = append(app.Commands,
		DiffCommandBuilder(app, meta, storeFlags),
		EditCommandBuilder(app, meta, storeFlags),
		GetCommandBuilder(app, meta, storeFlags),
		ImportCommandBuilder(app, meta, storeFlags),
		LsCommandBuilder(app, meta, storeFlags),
		PurgeCommandBuilder(app, meta, storeFlags),
		RmCommandBuilder(app, meta, storeFlags),
		SetCommandBuilder(app, meta, storeFlags),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

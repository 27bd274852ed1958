// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/config"
	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/prefs"
)

// PurgeCommandAction removes records not modified within --older-than.
func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "purge") {
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	p, ok := st.Backend().(prefs.Purger)
	if !ok {
		return fmt.Errorf("the %s backend does not support purge", settingsFrom(cmd).Backend)
	}

	n, err := p.Purge(cmd.Duration("older-than"))
	if err != nil {
		return err
	}
	registry(cmd).Purge()

	fmt.Fprintf(cmd.Root().Writer, "purged %d record(s)\n", n)
	return nil
}

// PurgeCommandBuilder constructs the cli.Command for "purge".
func PurgeCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	maxAge, _ := config.GetDuration("purge.older-than", 0)

	return &cli.Command{
		Name:      "purge",
		Usage:     "remove records older than a given age",
		UsageText: `prefctl purge --older-than DURATION [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.DurationFlag{
				Name:  "older-than",
				Usage: "remove records not modified within this duration, e.g. 720h",
				Value: maxAge,
			},
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := PurgeCommandValidator(ctx, c); err != nil {
				return err
			}
			return PurgeCommandAction(ctx, c)
		},
	}
}

// PurgeCommandValidator requires a positive --older-than.
func PurgeCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tldr") {
		return nil
	}
	if err := ArgCountValidator(cmd, 0, 0); err != nil {
		return err
	}
	if cmd.Duration("older-than") <= 0 {
		return fmt.Errorf("--older-than must be a positive duration")
	}
	return GlobalFlagsValidator(ctx, cmd)
}

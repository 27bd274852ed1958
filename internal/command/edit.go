// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/binding"
	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/output"
	"github.com/staranto/prefcache/internal/tui"
)

// EditCommandAction opens the interactive editor on KEY.
func EditCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "edit") {
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	key := cmd.Args().First()
	var def any
	if cmd.IsSet("default") {
		def = output.Parse(cmd.String("default"), cmd.Bool("string"))
	}

	state := binding.NewState(binding.Durable[any](ctx, st, key), def)
	return tui.Run(state, cmd.Bool("string"))
}

// EditCommandBuilder constructs the cli.Command for "edit".
func EditCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "edit a value interactively",
		UsageText: `prefctl edit KEY [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "default",
				Usage: "value shown while the key is not set",
			},
			stringFlag,
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := EditCommandValidator(ctx, c); err != nil {
				return err
			}
			return EditCommandAction(ctx, c)
		},
	}
}

// EditCommandValidator requires exactly one key.
func EditCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tldr") {
		return nil
	}
	if err := ArgCountValidator(cmd, 1, 1); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}

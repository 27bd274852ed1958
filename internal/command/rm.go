// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/prefs"
)

// RmCommandAction removes each key. Missing keys are not an error.
func RmCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "rm") {
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	keys := cmd.Args().Slice()
	for _, key := range keys {
		prefs.RemoveValue(ctx, st, key)
	}
	forget(cmd, keys...)

	return nil
}

// RmCommandBuilder constructs the cli.Command for "rm".
func RmCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "remove stored values",
		UsageText: `prefctl rm KEY... [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{tldrFlag}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := RmCommandValidator(ctx, c); err != nil {
				return err
			}
			return RmCommandAction(ctx, c)
		},
	}
}

// RmCommandValidator requires at least one key.
func RmCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tldr") {
		return nil
	}
	if err := ArgCountValidator(cmd, 1, -1); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}

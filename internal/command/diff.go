// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/output"
)

// DiffCommandAction compares the value of KEY with another key, or with the
// JSON content of a file when the second argument names one.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	left, err := loadJSON(ctx, cmd, st, cmd.Args().Get(0))
	if err != nil {
		return err
	}

	other := cmd.Args().Get(1)
	right, err := os.ReadFile(other)
	switch {
	case err == nil:
		log.Debugf("diff: comparing with file %s", other)
	case errors.Is(err, fs.ErrNotExist):
		if right, err = loadJSON(ctx, cmd, st, other); err != nil {
			return err
		}
	default:
		return fmt.Errorf("failed to read %s: %w", other, err)
	}

	w := cmd.Root().Writer
	out, changed, err := output.Diff(left, right, output.ColorEnabled(w, cmd.Bool("color")))
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprint(w, out)
	}
	return nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare a value with another key or a JSON file",
		UsageText: `prefctl diff KEY (KEY|FILE) [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(NewGlobalFlags("diff"), globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := DiffCommandValidator(ctx, c); err != nil {
				return err
			}
			return DiffCommandAction(ctx, c)
		},
	}
}

// DiffCommandValidator requires exactly two arguments.
func DiffCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tldr") {
		return nil
	}
	if err := ArgCountValidator(cmd, 2, 2); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}

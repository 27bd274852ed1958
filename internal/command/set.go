// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/binding"
	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/option"
	"github.com/staranto/prefcache/internal/output"
	"github.com/staranto/prefcache/internal/prefs"
)

// ErrWriteDropped is returned when a set did not reach the store.
var ErrWriteDropped = errors.New("write did not take effect")

// SetCommandAction stores VALUE under KEY. VALUE is decoded as JSON unless
// --string is given or it is not valid JSON. A JSON null removes the key.
func SetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "set") {
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	key := cmd.Args().Get(0)
	value := output.Parse(cmd.Args().Get(1), cmd.Bool("string"))

	p := binding.NewProperty(binding.Durable[any](ctx, st, key), nil)
	p.Set(value)
	forget(cmd, key)

	// The store swallows failures, so confirm the outcome.
	res := prefs.Lookup[any](ctx, st, key)
	switch {
	case option.IsNil(value) && res.Status != prefs.Absent:
		return fmt.Errorf("%w: %s is still set", ErrWriteDropped, key)
	case !option.IsNil(value) && res.Status != prefs.Present:
		if res.Err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteDropped, key, res.Err)
		}
		return fmt.Errorf("%w: %s", ErrWriteDropped, key)
	}

	return nil
}

// SetCommandBuilder constructs the cli.Command for "set".
func SetCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "store a value",
		UsageText: `prefctl set KEY VALUE [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			stringFlag,
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := SetCommandValidator(ctx, c); err != nil {
				return err
			}
			return SetCommandAction(ctx, c)
		},
	}
}

// SetCommandValidator requires exactly KEY and VALUE.
func SetCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tldr") {
		return nil
	}
	if err := ArgCountValidator(cmd, 2, 2); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}

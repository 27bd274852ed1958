// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/output"
)

// GetCommandAction prints the value of each key. With more than one key the
// values are rendered as one object keyed by name.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "get") {
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	keys := cmd.Args().Slice()
	path := cmd.String("path")
	def := cmd.String("default")

	values := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		raw, err := loadJSON(ctx, cmd, st, key)
		if errors.Is(err, ErrKeyNotFound) && cmd.IsSet("default") {
			raw, err = json.Marshal(output.Parse(def, cmd.Bool("string")))
		}
		if err != nil {
			return err
		}

		sel, ok := output.Select(raw, path)
		if !ok {
			return fmt.Errorf("%s: path %q not found", key, path)
		}
		values[key] = sel
	}

	doc := []byte(values[keys[0]])
	if len(keys) > 1 {
		if doc, err = json.Marshal(values); err != nil {
			return err
		}
	}

	w := cmd.Root().Writer
	return output.Render(w, cmd.String("output"), doc, output.ColorEnabled(w, cmd.Bool("color")))
}

// GetCommandBuilder constructs the cli.Command for "get".
func GetCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "show stored values",
		UsageText: `prefctl get KEY... [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "gjson path selecting part of each value",
			},
			&cli.StringFlag{
				Name:  "default",
				Usage: "value to show for keys that are not set",
			},
			stringFlag,
		}, append(NewGlobalFlags("get"), globalFlags...)...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GetCommandValidator(ctx, c); err != nil {
				return err
			}
			return GetCommandAction(ctx, c)
		},
	}
}

// GetCommandValidator requires at least one key.
func GetCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tldr") {
		return nil
	}
	if err := ArgCountValidator(cmd, 1, -1); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}

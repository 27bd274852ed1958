// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/importer"
	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/prefs"
)

// ImportCommandAction stores every attribute of an HCL file. Attributes set
// to null remove their key.
func ImportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "import") {
		return nil
	}

	entries, err := importer.ParseFile(cmd.Args().First())
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if cmd.Bool("dry-run") {
		for _, e := range entries {
			if e.Null {
				fmt.Fprintf(w, "rm  %s\n", e.Key)
			} else {
				fmt.Fprintf(w, "set %s = %s\n", e.Key, e.Value)
			}
		}
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	set, removed, failed, err := importEntries(ctx, st, entries)
	if err != nil {
		return err
	}
	registry(cmd).Purge()

	fmt.Fprintf(w, "imported %d key(s), removed %d\n", set, removed)
	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrWriteDropped, strings.Join(failed, ", "))
	}
	return nil
}

// importEntries applies entries to st and confirms each one with a lookup,
// since the store drops failed writes. Only confirmed changes are counted;
// the keys that did not take effect are returned in failed.
func importEntries(ctx context.Context, st *prefs.Store, entries []importer.Entry) (set, removed int, failed []string, err error) {
	for _, e := range entries {
		if e.Null {
			prefs.RemoveValue(ctx, st, e.Key)
			if res := prefs.Lookup[any](ctx, st, e.Key); res.Status != prefs.Absent || res.Err != nil {
				log.WithField("status", res.Status.String()).Warnf("import: %s was not removed", e.Key)
				failed = append(failed, e.Key)
				continue
			}
			removed++
			continue
		}

		var v any
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return set, removed, failed, fmt.Errorf("%s: %w", e.Key, err)
		}
		prefs.SetValue(ctx, st, e.Key, v)
		if res := prefs.Lookup[any](ctx, st, e.Key); res.Status != prefs.Present {
			log.WithField("status", res.Status.String()).Warnf("import: %s was not written", e.Key)
			failed = append(failed, e.Key)
			continue
		}
		set++
	}
	return set, removed, failed, nil
}

// ImportCommandBuilder constructs the cli.Command for "import".
func ImportCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "store the attributes of an HCL file",
		UsageText: `prefctl import FILE.hcl [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "dry-run",
				Aliases:     []string{"n"},
				Usage:       "show what would change without writing",
				HideDefault: true,
			},
			tldrFlag,
		}, globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := ImportCommandValidator(ctx, c); err != nil {
				return err
			}
			return ImportCommandAction(ctx, c)
		},
	}
}

// ImportCommandValidator requires exactly one file.
func ImportCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tldr") {
		return nil
	}
	if err := ArgCountValidator(cmd, 1, 1); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/output"
	"github.com/staranto/prefcache/internal/prefs"
)

// listing is the json/yaml form of an output.Row.
type listing struct {
	Key      string          `json:"key"`
	Size     int64           `json:"size,omitempty"`
	Modified *time.Time      `json:"modified,omitempty"`
	Value    json.RawMessage `json:"value"`
}

// LsCommandAction lists stored keys with their size, age and a preview of
// the value. Records that do not decode are listed with a null value.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ls") {
		return nil
	}

	st, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeStore(st)

	rows := listRows(ctx, cmd, st)
	rows = output.FilterRows(rows, cmd.String("filter"))
	output.SortRows(rows, cmd.String("sort"))

	w := cmd.Root().Writer

	if cmd.Bool("quiet") {
		for _, r := range rows {
			fmt.Fprintln(w, r.Key)
		}
		return nil
	}

	switch format := cmd.String("output"); format {
	case "json", "yaml", "raw":
		out := make([]listing, 0, len(rows))
		for _, r := range rows {
			l := listing{Key: r.Key, Size: r.Size, Value: r.Value}
			if !r.ModTime.IsZero() {
				mt := r.ModTime.UTC()
				l.Modified = &mt
			}
			out = append(out, l)
		}
		doc, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return output.Render(w, format, doc, output.ColorEnabled(w, cmd.Bool("color")))
	default:
		output.TableWriter(w, rows, output.TableOptions{
			Color:  output.ColorEnabled(w, cmd.Bool("color")),
			Titles: cmd.Bool("titles"),
			Width:  cmd.Int("width"),
		})
	}

	return nil
}

func listRows(ctx context.Context, cmd *cli.Command, st *prefs.Store) []output.Row {
	stater, _ := st.Backend().(prefs.Stater)

	keys := st.Keys(ctx)
	rows := make([]output.Row, 0, len(keys))
	for _, key := range keys {
		row := output.Row{Key: key, Value: json.RawMessage("null")}
		if raw, err := loadJSON(ctx, cmd, st, key); err == nil {
			row.Value = raw
		} else {
			log.WithError(err).Debugf("ls: no value for %s", key)
		}
		if stater != nil {
			if info, ok, err := stater.Stat(ctx, key); err == nil && ok {
				row.Size = info.Size
				row.ModTime = info.ModTime
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// LsCommandBuilder constructs the cli.Command for "ls".
func LsCommandBuilder(cmd *cli.Command, meta meta.Meta, globalFlags []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list stored keys",
		UsageText: `prefctl ls [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append(NewListFlags("ls"), NewGlobalFlags("ls")...), globalFlags...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := LsCommandValidator(ctx, c); err != nil {
				return err
			}
			return LsCommandAction(ctx, c)
		},
	}
}

// LsCommandValidator rejects positional args.
func LsCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := ArgCountValidator(cmd, 0, 0); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/backend"
	"github.com/staranto/prefcache/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	stringFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "string",
		Usage:       "store the value as a string even if it parses as JSON",
		HideDefault: true,
	}
)

// NewStoreFlags returns the flags that select and configure the backend.
// Defaults come from s, which already merges the config file and PREFCTL_*
// environment variables.
func NewStoreFlags(s config.Settings) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "backend",
			Usage: "store backend (" + strings.Join(backend.Types, ", ") + ")",
			Value: s.Backend,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, BackendValidator)
			},
		},
		&cli.StringFlag{
			Name:  "dir",
			Usage: "file backend directory",
			Value: s.Dir,
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "sqlite backend database file",
			Value: s.DB,
		},
		&cli.StringFlag{
			Name:  "bucket",
			Usage: "s3 backend bucket",
			Value: s.Bucket,
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "s3 backend key prefix",
			Value: s.Prefix,
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "s3 backend region",
			Value: s.Region,
		},
		&cli.StringFlag{
			Name:  "profile",
			Usage: "s3 backend shared config profile",
			Value: s.Profile,
		},
		&cli.StringFlag{
			Name:  "endpoint",
			Usage: "s3 compatible endpoint URL",
			Value: s.Endpoint,
		},
		&cli.StringFlag{
			Name:  "codec",
			Usage: "value encoding (json, yaml)",
			Value: s.Codec,
		},
	}
}

// NewGlobalFlags returns the presentation flags, sourced from the params[0]
// namespace of the config file and then its top level.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		tldrFlag,
	}

	return
}

// NewListFlags returns the ls table flags.
func NewListFlags(params ...string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "key",
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.IntFlag{
			Name:    "width",
			Aliases: []string{"w"},
			Usage:   "truncate value previews to this many characters",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"width", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("width", altsrc.StringSourcer(cfg.Source)),
			),
			Value: 40,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Aliases:     []string{"q"},
			Usage:       "print only keys",
			HideDefault: true,
		},
	}
}

// settingsFrom returns the Settings for this run: the loaded Settings with
// any explicitly set store flags applied.
func settingsFrom(cmd *cli.Command) config.Settings {
	s := GetMeta(cmd).Settings
	override := func(name string, dst *string) {
		if cmd.IsSet(name) {
			*dst = cmd.String(name)
		}
	}
	override("backend", &s.Backend)
	override("dir", &s.Dir)
	override("db", &s.DB)
	override("bucket", &s.Bucket)
	override("prefix", &s.Prefix)
	override("region", &s.Region)
	override("profile", &s.Profile)
	override("endpoint", &s.Endpoint)
	override("codec", &s.Codec)
	return s
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/prefcache/internal/command"
	"github.com/staranto/prefcache/internal/config"
	mylog "github.com/staranto/prefcache/internal/log"
	"github.com/staranto/prefcache/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args))
}

func realMain(args []string) int {
	mylog.InitLogger()

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an @set argument into the flags listed under
// <command>.<set> in the config file. Without an @set, <command>.defaults is
// used when present. The expanded flags go right after the command so that
// anything given on the command line still wins.
func mangleArguments(args []string) []string {
	// Short-circuit for --help/-h. If help is requested, just keep the
	// executable and command and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return []string{args[0], args[1], "--help"}
		}
	}

	set := "defaults"
	rest := make([]string, 0, len(args)-2)
	for _, a := range args[2:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 && set == "defaults" {
			set = a[1:]
			continue
		}
		rest = append(rest, a)
	}

	out := []string{args[0], args[1]}
	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}

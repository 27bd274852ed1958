// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/backend"
	"github.com/staranto/prefcache/internal/output"
)

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func BackendValidator(value any) error {
	if !slices.Contains(backend.Types, strings.ToLower(value.(string))) {
		return fmt.Errorf("must be one of %v", backend.Types)
	}
	return nil
}

// ArgCountValidator checks the number of positional args is within
// [minArgs, maxArgs]. A maxArgs < 0 means no upper bound.
func ArgCountValidator(cmd *cli.Command, minArgs, maxArgs int) error {
	n := cmd.Args().Len()
	switch {
	case n < minArgs:
		return fmt.Errorf("%s: expected at least %d argument(s), got %d\nusage: %s", cmd.Name, minArgs, n, cmd.UsageText)
	case maxArgs >= 0 && n > maxArgs:
		return fmt.Errorf("%s: expected at most %d argument(s), got %d\nusage: %s", cmd.Name, maxArgs, n, cmd.UsageText)
	}
	return nil
}

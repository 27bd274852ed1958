// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/backend"
	"github.com/staranto/prefcache/internal/memcache"
	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/prefs"
)

// ErrKeyNotFound is returned by commands asked for a key with no value.
var ErrKeyNotFound = errors.New("key not found")

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr prefctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "prefctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// registry returns the run's cache registry, falling back to the shared one.
func registry(cmd *cli.Command) *memcache.Registry {
	if r := GetMeta(cmd).Registry; r != nil {
		return r
	}
	return memcache.Shared()
}

// openStore opens the store selected by the command's flags. Callers must
// backend.Close the result.
func openStore(ctx context.Context, cmd *cli.Command) (*prefs.Store, error) {
	s := settingsFrom(cmd)
	log.Debugf("openStore: backend=%s codec=%s", s.Backend, s.Codec)

	st, err := backend.Open(ctx, s)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// closeStore releases st, logging rather than failing the command.
func closeStore(st *prefs.Store) {
	if err := backend.Close(st); err != nil {
		log.WithError(err).Warn("failed to close store")
	}
}

// loadJSON returns the stored value for key as canonical JSON. Results are
// cached in the run's string to []byte cache so repeated lookups of a key
// hit the backend once.
func loadJSON(ctx context.Context, cmd *cli.Command, st *prefs.Store, key string) ([]byte, error) {
	cache := memcache.GetCache[string, []byte](registry(cmd))
	return cache.GetOrLoad(key, func() ([]byte, error) {
		res := prefs.Lookup[any](ctx, st, key)
		switch res.Status {
		case prefs.Absent:
			if res.Err != nil {
				return nil, fmt.Errorf("%s: %w", key, res.Err)
			}
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		case prefs.Undecodable:
			return nil, fmt.Errorf("%s: %w", key, res.Err)
		}
		b, err := json.Marshal(res.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return b, nil
	})
}

// forget drops key from the run's cache after a write.
func forget(cmd *cli.Command, keys ...string) {
	cache := memcache.GetCache[string, []byte](registry(cmd))
	for _, k := range keys {
		cache.Remove(k)
	}
}

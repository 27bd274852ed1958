// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/prefcache/internal/config"
	"github.com/staranto/prefcache/internal/importer"
	"github.com/staranto/prefcache/internal/meta"
	"github.com/staranto/prefcache/internal/prefs"
)

// testEnv points the app at a fresh file store and keeps any user config
// out of the way.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	home := t.TempDir()
	t.Setenv("PREFCTL_CFG", "")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("APPDATA", "")
	t.Setenv("PREFCTL_BACKEND", "file")
	t.Setenv("PREFCTL_STORE_DIR", dir)
	t.Setenv("PREFCTL_SECRET", "")
	t.Setenv("NO_COLOR", "1")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"prefctl"}, args...)

	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = io.Discard

	err = app.Run(context.Background(), full)
	return buf.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "prefctl %s", strings.Join(args, " "))
	return out
}

func TestSetGetRm(t *testing.T) {
	testEnv(t)

	mustRun(t, "set", "username", "Brandon")
	assert.Equal(t, "Brandon\n", mustRun(t, "get", "username"))

	mustRun(t, "set", "volume", "7")
	assert.Equal(t, "7", strings.TrimSpace(mustRun(t, "get", "-o", "json", "volume")))
	assert.Equal(t, `{"username":"Brandon","volume":7}`+"\n", mustRun(t, "get", "username", "volume"))

	mustRun(t, "rm", "volume", "never-set")
	_, err := run(t, "get", "volume")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSet_NullRemoves(t *testing.T) {
	testEnv(t)

	mustRun(t, "set", "theme", "dark")
	mustRun(t, "set", "theme", "null")

	_, err := run(t, "get", "theme")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGet_DefaultAndPath(t *testing.T) {
	testEnv(t)

	assert.Equal(t, "Guest\n", mustRun(t, "get", "--default", "Guest", "username"))

	mustRun(t, "set", "window", `{"w":800,"h":600}`)
	assert.Equal(t, "800\n", mustRun(t, "get", "-p", "w", "window"))
	assert.Equal(t, "h: 600\nw: 800\n", mustRun(t, "get", "-o", "yaml", "window"))

	_, err := run(t, "get", "-p", "depth", "window")
	assert.ErrorContains(t, err, `path "depth" not found`)
}

func TestLs(t *testing.T) {
	testEnv(t)

	mustRun(t, "set", "username", "Brandon")
	mustRun(t, "set", "ui/volume", "7")
	mustRun(t, "set", "theme", "dark")

	assert.Equal(t, "theme\nui/volume\nusername\n", mustRun(t, "ls", "-q"))
	assert.Equal(t, "username\ntheme\n", mustRun(t, "ls", "-q", "--sort=-key", "--filter=key!^ui/"))

	out := mustRun(t, "ls", "-o", "json")
	assert.Contains(t, out, `"key": "theme"`)
	assert.Contains(t, out, `"value": "dark"`)

	out = mustRun(t, "ls", "--titles")
	assert.Contains(t, out, "Brandon")
	assert.Contains(t, out, "ui/volume")

	_, err := run(t, "ls", "extra")
	assert.ErrorContains(t, err, "expected at most 0 argument(s)")
}

func TestImport(t *testing.T) {
	testEnv(t)
	file := filepath.Join("..", "importer", "testdata", "prefs.hcl")

	mustRun(t, "set", "legacy", "old")

	out := mustRun(t, "import", "--dry-run", file)
	assert.Contains(t, out, "set username = \"Brandon\"")
	assert.Contains(t, out, "rm  legacy")
	assert.Equal(t, "old\n", mustRun(t, "get", "legacy"), "dry run writes nothing")

	assert.Equal(t, "imported 6 key(s), removed 1\n", mustRun(t, "import", file))
	assert.Equal(t, "HI\n", mustRun(t, "get", "shout"))
	assert.Equal(t, "600\n", mustRun(t, "get", "-p", "h", "window"))

	_, err := run(t, "get", "legacy")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestDiff(t *testing.T) {
	testEnv(t)

	mustRun(t, "set", "a", `{"x":1,"y":true}`)
	mustRun(t, "set", "b", `{"x":2,"y":true}`)

	out := mustRun(t, "diff", "a", "b")
	assert.Contains(t, out, `"x": 1`)
	assert.Contains(t, out, `"x": 2`)

	assert.Empty(t, mustRun(t, "diff", "a", "a"))

	file := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"x":1,"y":true}`), 0o600))
	assert.Empty(t, mustRun(t, "diff", "a", file))

	_, err := run(t, "diff", "a", "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestPurge(t *testing.T) {
	testEnv(t)

	mustRun(t, "set", "username", "Brandon")
	assert.Equal(t, "purged 0 record(s)\n", mustRun(t, "purge", "--older-than", "1h"))
	assert.Equal(t, "Brandon\n", mustRun(t, "get", "username"))

	_, err := run(t, "purge")
	assert.ErrorContains(t, err, "--older-than must be a positive duration")
}

func TestBackendFlag(t *testing.T) {
	testEnv(t)

	mustRun(t, "set", "--backend", "memory", "username", "Brandon")
	_, err := run(t, "get", "username")
	assert.ErrorIs(t, err, ErrKeyNotFound, "memory writes do not reach the file store")

	_, err = run(t, "get", "--backend", "bogus", "username")
	assert.ErrorContains(t, err, "must be one of")

	db := filepath.Join(t.TempDir(), "prefs.db")
	mustRun(t, "set", "--backend", "sqlite", "--db", db, "volume", "7")
	assert.Equal(t, "7\n", mustRun(t, "get", "--backend", "sqlite", "--db", db, "volume"))
}

func TestValidators(t *testing.T) {
	testEnv(t)

	_, err := run(t, "set", "only-key")
	assert.ErrorContains(t, err, "expected at least 2 argument(s)")

	_, err = run(t, "get")
	assert.ErrorContains(t, err, "expected at least 1 argument(s)")

	_, err = run(t, "edit")
	assert.ErrorContains(t, err, "expected at least 1 argument(s)")

	_, err = run(t, "get", "-o", "xml", "k")
	assert.ErrorContains(t, err, "must be one of")

	assert.Error(t, JammedFlagValidator("--oops"))
	assert.NoError(t, JammedFlagValidator("fine"))
	assert.NoError(t, BackendValidator("SQLite"))
}

func TestCompletion(t *testing.T) {
	testEnv(t)

	assert.Contains(t, mustRun(t, "completion", "bash"), "complete -F _prefctl prefctl")
	assert.Contains(t, mustRun(t, "completion", "zsh"), "compdef _prefctl prefctl")

	t.Setenv("SHELL", "/bin/sh")
	_, err := run(t, "completion")
	assert.ErrorContains(t, err, "usage")
}

func TestSettingsFrom(t *testing.T) {
	s := config.Settings{Backend: "file", Dir: "/tmp/prefs", Codec: "json"}
	var got config.Settings

	cmd := &cli.Command{
		Name:     "probe",
		Metadata: map[string]any{"meta": meta.Meta{Settings: s}},
		Flags:    NewStoreFlags(s),
		Action: func(ctx context.Context, c *cli.Command) error {
			got = settingsFrom(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"probe", "--codec", "yaml", "--bucket", "b"}))

	assert.Equal(t, "file", got.Backend)
	assert.Equal(t, "/tmp/prefs", got.Dir)
	assert.Equal(t, "yaml", got.Codec)
	assert.Equal(t, "b", got.Bucket)
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{Metadata: map[string]any{"meta": 42}}))
	assert.NotNil(t, registry(&cli.Command{}))
}

func TestSealedStore(t *testing.T) {
	dir := testEnv(t)
	t.Setenv("PREFCTL_SECRET", strings.Repeat("ab", 32))

	mustRun(t, "set", "token", "s3cr3t-value")
	assert.Equal(t, "s3cr3t-value\n", mustRun(t, "get", "token"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "s3cr3t-value")
	}

	t.Setenv("PREFCTL_SECRET", "")
	_, err = run(t, "get", "token")
	assert.Error(t, err, "sealed records do not decode without the key")
}

// rejectingBackend fails every write and delete for the keys in reject.
type rejectingBackend struct {
	*prefs.MemoryBackend
	reject map[string]bool
}

func (b *rejectingBackend) Write(ctx context.Context, key string, data []byte) error {
	if b.reject[key] {
		return errors.New("read-only key")
	}
	return b.MemoryBackend.Write(ctx, key, data)
}

func (b *rejectingBackend) Delete(ctx context.Context, key string) error {
	if b.reject[key] {
		return errors.New("read-only key")
	}
	return b.MemoryBackend.Delete(ctx, key)
}

func TestImportEntries_CountsOnlyConfirmedWrites(t *testing.T) {
	ctx := context.Background()
	b := &rejectingBackend{
		MemoryBackend: prefs.NewMemoryBackend(),
		reject:        map[string]bool{"locked": true, "pinned": true},
	}
	require.NoError(t, b.MemoryBackend.Write(ctx, "pinned", []byte(`1`)))
	require.NoError(t, b.MemoryBackend.Write(ctx, "stale", []byte(`2`)))
	st := prefs.New(b)

	set, removed, failed, err := importEntries(ctx, st, []importer.Entry{
		{Key: "username", Value: []byte(`"Brandon"`)},
		{Key: "locked", Value: []byte(`true`)},
		{Key: "stale", Null: true},
		{Key: "pinned", Null: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, set)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"locked", "pinned"}, failed)

	_, _, _, err = importEntries(ctx, st, []importer.Entry{{Key: "bad", Value: []byte(`{`)}})
	assert.ErrorContains(t, err, "bad")
}

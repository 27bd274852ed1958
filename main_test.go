// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/prefcache/internal/config"
)

func loadTestConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("PREFCTL_CFG", path)
	_, err := config.Load()
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("PREFCTL_CFG")
		_, _ = config.Load()
	})
}

func TestMangleArguments(t *testing.T) {
	loadTestConfig(t, `
ls:
  defaults:
    - --titles
  wide:
    - --width 80
    - -o json
`)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults inserted",
			args: []string{"prefctl", "ls", "-q"},
			want: []string{"prefctl", "ls", "--titles", "-q"},
		},
		{
			name: "named set replaces defaults",
			args: []string{"prefctl", "ls", "@wide", "-f", "key^ui/"},
			want: []string{"prefctl", "ls", "--width", "80", "-o", "json", "-f", "key^ui/"},
		},
		{
			name: "unknown set adds nothing",
			args: []string{"prefctl", "ls", "@nope"},
			want: []string{"prefctl", "ls"},
		},
		{
			name: "command without sets",
			args: []string{"prefctl", "get", "username"},
			want: []string{"prefctl", "get", "username"},
		},
		{
			name: "help wins",
			args: []string{"prefctl", "ls", "@wide", "-h"},
			want: []string{"prefctl", "ls", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mangleArguments(tt.args))
		})
	}
}

func TestRealMain_Version(t *testing.T) {
	assert.Equal(t, 0, realMain([]string{"prefctl", "--version"}))
}

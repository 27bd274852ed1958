// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	got, err := ParseFile(filepath.Join("testdata", "prefs.hcl"))
	require.NoError(t, err)

	byKey := map[string]Entry{}
	var keys []string
	for _, e := range got {
		byKey[e.Key] = e
		keys = append(keys, e.Key)
	}

	assert.Equal(t, []string{"legacy", "muted", "shout", "tags", "username", "volume", "window"}, keys)
	assert.Equal(t, `"Brandon"`, string(byKey["username"].Value))
	assert.Equal(t, `7`, string(byKey["volume"].Value))
	assert.Equal(t, `false`, string(byKey["muted"].Value))
	assert.JSONEq(t, `{"w":800,"h":600}`, string(byKey["window"].Value))
	assert.JSONEq(t, `["a","b"]`, string(byKey["tags"].Value))
	assert.Equal(t, `"HI"`, string(byKey["shout"].Value))
	assert.True(t, byKey["legacy"].Null)
	assert.Nil(t, byKey["legacy"].Value)
}

func TestParseFile_Errors(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "missing.hcl"))
	assert.Error(t, err)

	_, err = ParseFile(filepath.Join("testdata", "blocks.hcl"))
	assert.ErrorContains(t, err, "only contain attributes")
}

func TestParse(t *testing.T) {
	got, err := Parse([]byte(`theme = lower("DARK")`), "inline.hcl")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Entry{Key: "theme", Value: []byte(`"dark"`)}, got[0])

	_, err = Parse([]byte(`theme = `), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`theme = nope`), "vars.hcl")
	assert.ErrorContains(t, err, "failed to evaluate theme")
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOption_Basics(t *testing.T) {
	s := Some(42)
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.True(t, s.IsSome())
	assert.Equal(t, 42, s.OrElse(7))

	n := None[int]()
	assert.True(t, n.IsNone())
	assert.Equal(t, 7, n.OrElse(7))
	assert.Equal(t, "None", n.String())
	assert.Equal(t, "Some(42)", s.String())

	assert.Equal(t, Some("x"), FromPair("x", true))
	assert.Equal(t, None[string](), FromPair("x", false))
}

func TestOption_JSON(t *testing.T) {
	type prefs struct {
		Theme Option[string] `json:"theme"`
		Size  Option[int]    `json:"size"`
	}

	raw, err := json.Marshal(prefs{Theme: Some("dark")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","size":null}`, string(raw))

	var got prefs
	require.NoError(t, json.Unmarshal([]byte(`{"theme":null,"size":3}`), &got))
	assert.True(t, got.Theme.IsNone())
	assert.Equal(t, Some(3), got.Size)

	var bad Option[int]
	assert.Error(t, json.Unmarshal([]byte(`"three"`), &bad))
}

func TestOption_YAML(t *testing.T) {
	type prefs struct {
		Theme Option[string] `yaml:"theme"`
		Size  Option[int]    `yaml:"size"`
	}

	var got prefs
	require.NoError(t, yaml.Unmarshal([]byte("theme: light\nsize: ~\n"), &got))
	assert.Equal(t, Some("light"), got.Theme)
	assert.True(t, got.Size.IsNone())

	raw, err := yaml.Marshal(prefs{Size: Some(9)})
	require.NoError(t, err)
	assert.Equal(t, "theme: null\nsize: 9\n", string(raw))
}

func TestIsNil(t *testing.T) {
	var nilPtr *int
	var nilMap map[string]int
	var nilSlice []byte
	var nilIface error
	one := 1

	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"untyped nil", nil, true},
		{"nil interface", nilIface, true},
		{"nil pointer", nilPtr, true},
		{"nil map", nilMap, true},
		{"nil slice", nilSlice, true},
		{"none", None[int](), true},
		{"nested none", None[Option[int]](), true},
		{"some none", Some(None[int]()), false},
		{"pointer", &one, false},
		{"empty slice", []byte{}, false},
		{"zero int", 0, false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNil(tt.in))
		})
	}
}

func TestOption_NestedJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Option[Option[int]]
		raw  string
	}{
		{"none", None[Option[int]](), `null`},
		{"some none", Some(None[int]()), `[null]`},
		{"some some", Some(Some(3)), `[3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, string(raw))

			var got Option[Option[int]]
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, tt.in, got)
		})
	}

	var got Option[Option[int]]
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &got))
	assert.Error(t, json.Unmarshal([]byte(`3`), &got))
}

func TestOption_NestedYAML(t *testing.T) {
	raw, err := yaml.Marshal(Some(None[int]()))
	require.NoError(t, err)

	var got Option[Option[int]]
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, Some(None[int]()), got)

	raw, err = yaml.Marshal(Some(Some(3)))
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, Some(Some(3)), got)

	assert.Error(t, yaml.Unmarshal([]byte("3\n"), &got))
}

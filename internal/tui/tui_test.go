// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/prefcache/internal/binding"
	"github.com/staranto/prefcache/internal/prefs"
)

func newModel(t *testing.T, def any) (*Model, *prefs.Store) {
	t.Helper()
	st := prefs.New(prefs.NewMemoryBackend())
	s := binding.NewState(binding.Durable[any](context.Background(), st, "username"), def)
	m := New(s, false)
	t.Cleanup(m.Close)
	return m, st
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_StartsWithCurrentValue(t *testing.T) {
	m, _ := newModel(t, "Guest")
	assert.Equal(t, "Guest", m.input.Value())
	assert.Contains(t, m.View(), "username")
	assert.Contains(t, m.View(), "Guest")
}

func TestModel_EnterSaves(t *testing.T) {
	ctx := context.Background()
	m, st := newModel(t, "Guest")

	m.input.SetValue("")
	typeText(m, "Brandon")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	v, ok := prefs.GetValue[string](ctx, st, "username")
	assert.True(t, ok)
	assert.Equal(t, "Brandon", v)
	assert.Contains(t, m.View(), "saved")

	m.input.SetValue(`{"w":800}`)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	obj, ok := prefs.GetValue[map[string]int](ctx, st, "username")
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"w": 800}, obj)
}

func TestModel_NullRemoves(t *testing.T) {
	ctx := context.Background()
	m, st := newModel(t, "Guest")

	m.input.SetValue("Brandon")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("null")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, present, err := st.Backend().Read(ctx, "username")
	require.NoError(t, err)
	assert.False(t, present)
	assert.Equal(t, "Guest", m.state.Get())
}

func TestModel_CtrlDRemoves(t *testing.T) {
	ctx := context.Background()
	m, st := newModel(t, "Guest")

	m.input.SetValue("Brandon")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})

	_, ok := prefs.GetValue[string](ctx, st, "username")
	assert.False(t, ok)
	assert.Equal(t, "Guest", m.input.Value())
	assert.Contains(t, m.View(), "removed")
}

func TestModel_ObservesChanges(t *testing.T) {
	m, _ := newModel(t, "Guest")

	m.state.Set("Ada")
	msg := m.waitForChange()
	assert.IsType(t, changedMsg{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Ada")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t, "Guest")

	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_CloseReleasesWaiter(t *testing.T) {
	m, _ := newModel(t, "Guest")

	got := make(chan tea.Msg, 1)
	go func() { got <- m.waitForChange() }()

	m.Close()
	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("waitForChange still blocked after Close")
	}

	assert.Nil(t, m.waitForChange(), "closed models never block")
	m.Close()
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/prefcache/internal/binding"
	"github.com/staranto/prefcache/internal/output"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f6be00"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00c8f0"))
	statusStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888888"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// changedMsg reports that the bound value changed.
type changedMsg struct{}

// Model edits a single bound preference.
type Model struct {
	state   *binding.State[any]
	input   textinput.Model
	changes chan struct{}
	done    chan struct{}
	cancel  func()
	status  string
	asText  bool
}

// New returns a Model editing st. Typed input is stored as JSON when it
// parses as JSON, unless asString is set.
func New(st *binding.State[any], asString bool) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.SetValue(display(st.Get()))
	ti.Focus()

	m := &Model{
		state:   st,
		input:   ti,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		asText:  asString,
	}
	m.cancel = st.Observe(func(any) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	return m
}

// Close stops observing the bound value and releases a pending
// waitForChange.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		close(m.done)
	}
}

// waitForChange blocks until the bound value changes. It returns nil once
// the Model is closed.
func (m *Model) waitForChange() tea.Msg {
	select {
	case <-m.changes:
		return changedMsg{}
	case <-m.done:
		return nil
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			m.state.Set(output.Parse(m.input.Value(), m.asText))
			m.status = "saved"
			return m, nil
		case tea.KeyCtrlD:
			m.state.Remove()
			m.input.SetValue(display(m.state.Get()))
			m.status = "removed"
			return m, nil
		}
	case changedMsg:
		return m, m.waitForChange
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(m.state.Key()))
	fmt.Fprintf(&b, "current: %s\n\n", valueStyle.Render(display(m.state.Get())))
	fmt.Fprintln(&b, m.input.View())
	if m.status != "" {
		fmt.Fprintln(&b, statusStyle.Render(m.status))
	}
	fmt.Fprint(&b, helpStyle.Render("enter save • ctrl+d remove • esc quit"))
	return b.String()
}

// Run edits st until the user quits.
func Run(st *binding.State[any], asString bool, opts ...tea.ProgramOption) error {
	m := New(st, asString)
	defer m.Close()

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return nil
}

// display is the text form of a bound value.
func display(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return output.Text(b)
}

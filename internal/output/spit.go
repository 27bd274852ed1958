// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "yaml", "raw"}

// ErrInvalidJSON is returned when a value handed to Render is not JSON.
var ErrInvalidJSON = errors.New("value is not valid JSON")

// Render writes value, a JSON document, to w in format. Text output prints
// strings bare and everything else as compact JSON. Color only applies to
// json output.
func Render(w io.Writer, format string, value []byte, color bool) error {
	if w == nil {
		w = os.Stdout
	}
	if !gjson.ValidBytes(value) {
		return ErrInvalidJSON
	}

	switch format {
	case "raw":
		_, err := w.Write(value)
		return err
	case "json":
		out := pretty.Pretty(value)
		if color {
			out = pretty.Color(out, pretty.TerminalStyle)
		}
		_, err := w.Write(out)
		return err
	case "yaml":
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to render yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		_, err := fmt.Fprintln(w, Text(value))
		return err
	}

	return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// Text returns the plain rendering of a JSON value: strings without quotes,
// null as empty, anything else compact.
func Text(value []byte) string {
	r := gjson.ParseBytes(value)
	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.Null:
		return ""
	}
	return string(pretty.Ugly([]byte(r.Raw)))
}

// Select returns the sub-document of value at the gjson path. An empty path
// selects the whole value.
func Select(value []byte, path string) ([]byte, bool) {
	if path == "" {
		return value, true
	}
	r := gjson.GetBytes(value, path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}

// ColorEnabled reports whether colored output should be written to w: the
// caller asked for it, NO_COLOR is unset and w is a terminal.
func ColorEnabled(w io.Writer, want bool) bool {
	if !want {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}
	if w == nil {
		w = os.Stdout
	}

	rows := make([][]string, 0, len(examples))
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// Parse turns command line input into a value to store. Valid JSON is
// decoded unless asString is set; anything else is kept as a string.
func Parse(s string, asString bool) any {
	if asString || !gjson.Valid(s) {
		return s
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

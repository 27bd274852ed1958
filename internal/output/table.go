// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"

	"github.com/staranto/prefcache/internal/config"
)

// Row is one stored preference as listed by ls. Size and ModTime are zero
// when the backend cannot describe records.
type Row struct {
	Key     string
	Size    int64
	ModTime time.Time
	Value   []byte
}

// Field returns the named column of the row as a string, as used by filters.
func (r Row) Field(name string) (string, bool) {
	switch name {
	case "key":
		return r.Key, true
	case "value":
		return Text(r.Value), true
	case "size":
		return fmt.Sprintf("%d", r.Size), true
	case "modified":
		if r.ModTime.IsZero() {
			return "", true
		}
		return r.ModTime.UTC().Format(time.RFC3339), true
	}
	return "", false
}

// TableOptions controls TableWriter.
type TableOptions struct {
	Color  bool
	Titles bool
	Width  int
	Now    time.Time
}

// Columns lists the table columns in order.
var Columns = []string{"key", "size", "modified", "value"}

// TableWriter renders rows as a borderless table.
func TableWriter(w io.Writer, rows []Row, opts TableOptions) {
	if len(rows) == 0 {
		return
	}
	if w == nil {
		w = os.Stdout
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Width <= 0 {
		opts.Width, _ = config.GetInt("width", 40)
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		size, modified := "-", "-"
		if !r.ModTime.IsZero() {
			size = humanize.Bytes(uint64(max(r.Size, 0)))
			modified = humanize.RelTime(r.ModTime, opts.Now, "ago", "from now")
		}
		cells = append(cells, []string{r.Key, size, modified, Preview(r.Value, opts.Width)})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(Columns...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// Preview is the single-line text form of value cut to width runes.
func Preview(value []byte, width int) string {
	s := strings.Join(strings.Fields(Text(value)), " ")
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:max(width-1, 0)]) + "…"
}

// SortRows orders rows by a comma separated list of columns. A leading "-"
// reverses a column. Unknown columns are ignored.
func SortRows(rows []Row, spec string) {
	if spec == "" {
		return
	}

	type key struct {
		name string
		desc bool
	}
	var keys []key
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")
		if _, ok := (Row{}).Field(part); !ok {
			log.Warnf("unknown sort column: %s", part)
			continue
		}
		keys = append(keys, key{name: part, desc: desc})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareRows(rows[i], rows[j], k.name)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareRows(a, b Row, name string) int {
	switch name {
	case "size":
		return cmp.Compare(a.Size, b.Size)
	case "modified":
		return a.ModTime.Compare(b.ModTime)
	}
	av, _ := a.Field(name)
	bv, _ := b.Field(name)
	return strings.Compare(av, bv)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

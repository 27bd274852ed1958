// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff compares two JSON values and returns an ascii rendering of the
// differences. Values that are not objects are compared as {"value": v}.
func Diff(left, right []byte, color bool) (string, bool, error) {
	l, err := asObject(left)
	if err != nil {
		return "", false, fmt.Errorf("left: %w", err)
	}
	r, err := asObject(right)
	if err != nil {
		return "", false, fmt.Errorf("right: %w", err)
	}

	d := gojsondiff.New().CompareObjects(l, r)
	if !d.Modified() {
		return "", false, nil
	}

	f := formatter.NewAsciiFormatter(l, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(d)
	if err != nil {
		return "", true, fmt.Errorf("failed to format diff: %w", err)
	}
	return out, true, nil
}

func asObject(b []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{"value": v}, nil
}

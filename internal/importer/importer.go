// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"fmt"
	"sort"

	"github.com/apex/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Entry is one preference read from an import file. Value is JSON; a null
// Value means the key should be removed.
type Entry struct {
	Key   string
	Value []byte
	Null  bool
}

// functions are available to import expressions, e.g. upper("x").
var functions = map[string]function.Function{
	"upper":      stdlib.UpperFunc,
	"lower":      stdlib.LowerFunc,
	"concat":     stdlib.ConcatFunc,
	"jsonencode": stdlib.JSONEncodeFunc,
	"max":        stdlib.MaxFunc,
	"min":        stdlib.MinFunc,
}

// ParseFile reads top-level attributes from an HCL file. Each attribute
// becomes an Entry keyed by its name. Blocks are rejected.
func ParseFile(filename string) ([]Entry, error) {
	p := hclparse.NewParser()
	f, diags := p.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}
	return entries(f)
}

// Parse is ParseFile for in-memory source.
func Parse(src []byte, filename string) ([]Entry, error) {
	p := hclparse.NewParser()
	f, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}
	return entries(f)
}

func entries(f *hcl.File) ([]Entry, error) {
	attrs, diags := f.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("import file must only contain attributes: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: functions,
	}

	out := make([]Entry, 0, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s: %s", name, diags.Error())
		}
		if !v.IsWhollyKnown() {
			return nil, fmt.Errorf("value of %s is not known", name)
		}

		if v.IsNull() {
			out = append(out, Entry{Key: name, Null: true})
			continue
		}

		b, err := ctyjson.SimpleJSONValue{Value: v}.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		log.Debugf("import: %s = %s", name, b)
		out = append(out, Entry{Key: name, Value: b})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

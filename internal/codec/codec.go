// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEncode marks a value that could not be serialized.
	ErrEncode = errors.New("encode failed")
	// ErrDecode marks stored bytes that could not be deserialized as the
	// requested type.
	ErrDecode = errors.New("decode failed")
)

// Codec turns typed values into the opaque bytes held by a store and back.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the default codec.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrEncode, err)
	}
	return b, nil
}

func (JSON) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: json: %v", ErrDecode, err)
	}
	return nil
}

// YAML stores values as YAML documents.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Marshal(v any) (b []byte, err error) {
	// yaml.v3 panics on some unsupported kinds (funcs, channels).
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: yaml: %v", ErrEncode, r)
		}
	}()
	b, err = yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrEncode, err)
	}
	return b, nil
}

func (YAML) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: yaml: %v", ErrDecode, err)
	}
	return nil
}

// ByName resolves a codec from its configured name. An empty name selects
// JSON.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

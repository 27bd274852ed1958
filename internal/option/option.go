// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package option

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Option is a value that may be absent. The zero Option is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps v as a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent value of type T.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPair builds an Option from the usual (value, ok) return pair.
func FromPair[T any](v T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}
	return Some(v)
}

// Get returns the wrapped value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// IsNone reports whether the value is absent.
func (o Option[T]) IsNone() bool { return !o.ok }

// OrElse returns the wrapped value, or def when absent.
func (o Option[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.value
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// nested is implemented by every Option so that an Option of an Option can
// be told apart when encoding.
type nested interface {
	isOption()
}

func (Option[T]) isOption() {}

// holdsOption reports whether T is itself an Option.
func holdsOption[T any]() bool {
	var zero T
	_, ok := any(zero).(nested)
	return ok
}

// MarshalJSON encodes None as null and Some(v) as v. When v is itself an
// Option, Some(v) is wrapped as [v] so that Some(None) stays distinct from
// None.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	if holdsOption[T]() {
		return json.Marshal([1]T{o.value})
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes null as None.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	if holdsOption[T]() {
		var wrapped []T
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		if len(wrapped) != 1 {
			return fmt.Errorf("nested option: want a one element array, got %d elements", len(wrapped))
		}
		*o = Some(wrapped[0])
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// MarshalYAML encodes None as a YAML null. A nested Some(v) is wrapped as a
// one element sequence, as in JSON.
func (o Option[T]) MarshalYAML() (any, error) {
	if !o.ok {
		return nil, nil
	}
	if holdsOption[T]() {
		return []T{o.value}, nil
	}
	return o.value, nil
}

// UnmarshalYAML decodes a YAML null as None.
func (o *Option[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*o = None[T]()
		return nil
	}
	if holdsOption[T]() {
		if node.Kind != yaml.SequenceNode || len(node.Content) != 1 {
			return fmt.Errorf("nested option: want a one element sequence at line %d", node.Line)
		}
		var v T
		if err := node.Content[0].Decode(&v); err != nil {
			return err
		}
		*o = Some(v)
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// absenter is satisfied by Option and by any caller type that knows how to
// report its own absence.
type absenter interface {
	IsNone() bool
}

// IsNil reports whether v represents "no value": a nil interface, a nil
// pointer, map, slice, channel or func, or an absent Option.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	if a, ok := v.(absenter); ok {
		return a.IsNone()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

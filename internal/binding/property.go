// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"github.com/staranto/prefcache/internal/option"
)

// Property reads and writes straight through to its Backing.
type Property[T any] struct {
	backing Backing[T]
	def     T
}

// NewProperty binds b with a default returned whenever b holds no value.
func NewProperty[T any](b Backing[T], def T) *Property[T] {
	return &Property[T]{backing: b, def: def}
}

// NewOptionalProperty binds b with a default of None.
func NewOptionalProperty[T any](b Backing[option.Option[T]]) *Property[option.Option[T]] {
	return NewProperty(b, option.None[T]())
}

func (p *Property[T]) Key() string { return p.backing.Key() }

// Default returns the configured default.
func (p *Property[T]) Default() T { return p.def }

func (p *Property[T]) Get() T {
	if v, ok := p.backing.Load(); ok {
		return v
	}
	return p.def
}

// Set stores v. A nil or None v removes the record instead.
func (p *Property[T]) Set(v T) {
	if option.IsNil(v) {
		p.backing.Remove()
		return
	}
	p.backing.Store(v)
}

func (p *Property[T]) Remove() { p.backing.Remove() }

// Cell returns a two-way binding routed through p.
func (p *Property[T]) Cell() Cell[T] {
	return NewCell(p.Get, p.Set)
}

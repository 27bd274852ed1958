// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binding

// Cell is a two-way binding: a get/set pair handed to a UI component.
type Cell[T any] struct {
	get func() T
	set func(T)
}

func NewCell[T any](get func() T, set func(T)) Cell[T] {
	return Cell[T]{get: get, set: set}
}

func (c Cell[T]) Get() T  { return c.get() }
func (c Cell[T]) Set(v T) { c.set(v) }

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"sync"

	"github.com/apex/log"

	"github.com/staranto/prefcache/internal/option"
)

// State holds a local copy of a bound value for a reactive UI. Reads return
// the local copy. Writes update it, notify observers and then write through
// to the Backing.
type State[T any] struct {
	backing Backing[T]
	def     T

	mu        sync.Mutex
	value     T
	observers map[int]func(T)
	nextID    int
}

// NewState binds b with def and synchronizes the local copy from b.
func NewState[T any](b Backing[T], def T) *State[T] {
	s := &State[T]{backing: b, def: def, observers: map[int]func(T){}}
	s.Sync()
	return s
}

// NewOptionalState binds b with a default of None.
func NewOptionalState[T any](b Backing[option.Option[T]]) *State[option.Option[T]] {
	return NewState(b, option.None[T]())
}

func (s *State[T]) Key() string { return s.backing.Key() }

func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the local copy and writes v through. A nil or None v resets
// the local copy to the default and removes the record.
func (s *State[T]) Set(v T) {
	if option.IsNil(v) {
		s.Remove()
		return
	}
	s.update(v)
	s.backing.Store(v)
}

// Remove resets the local copy to the default and removes the record.
func (s *State[T]) Remove() {
	s.update(s.def)
	s.backing.Remove()
}

// Sync reloads the local copy from the Backing.
func (s *State[T]) Sync() {
	v, ok := s.backing.Load()
	if !ok {
		v = s.def
	}
	log.Debugf("binding: sync %s (present=%t)", s.backing.Key(), ok)
	s.update(v)
}

// Observe registers fn to be called with the new value after every change.
// The returned func cancels the registration.
func (s *State[T]) Observe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Cell returns a two-way binding routed through s.
func (s *State[T]) Cell() Cell[T] {
	return NewCell(s.Get, s.Set)
}

func (s *State[T]) update(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// Observers run unlocked so they may call Get.
	for _, fn := range fns {
		fn(v)
	}
}

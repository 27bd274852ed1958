// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"context"

	"github.com/staranto/prefcache/internal/memcache"
	"github.com/staranto/prefcache/internal/prefs"
)

// Backing is the store a binding reads and writes through.
type Backing[T any] interface {
	Load() (T, bool)
	Store(value T)
	Remove()
	Key() string
}

type durable[T any] struct {
	ctx   context.Context
	store *prefs.Store
	key   string
}

// Durable backs a binding with key in a prefs.Store. ctx is used for every
// backend call the binding makes.
func Durable[T any](ctx context.Context, s *prefs.Store, key string) Backing[T] {
	return &durable[T]{ctx: ctx, store: s, key: key}
}

func (d *durable[T]) Load() (T, bool) { return prefs.GetValue[T](d.ctx, d.store, d.key) }
func (d *durable[T]) Store(v T)       { prefs.SetValue(d.ctx, d.store, d.key, v) }
func (d *durable[T]) Remove()         { prefs.RemoveValue(d.ctx, d.store, d.key) }
func (d *durable[T]) Key() string     { return d.key }

type memory[T any] struct {
	cache *memcache.Cache[string, T]
	key   string
}

// Memory backs a binding with key in c.
func Memory[T any](c *memcache.Cache[string, T], key string) Backing[T] {
	return &memory[T]{cache: c, key: key}
}

// CachedMemory backs a binding with key in the registry's shared
// string-to-T cache.
func CachedMemory[T any](r *memcache.Registry, key string) Backing[T] {
	return Memory(memcache.GetCache[string, T](r), key)
}

func (m *memory[T]) Load() (T, bool) { return m.cache.Get(m.key) }
func (m *memory[T]) Store(v T)       { m.cache.Set(m.key, v) }
func (m *memory[T]) Remove()         { m.cache.Remove(m.key) }
func (m *memory[T]) Key() string     { return m.key }

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package memcache

import (
	"reflect"
	"sort"
	"sync"

	"github.com/apex/log"
)

// signature identifies a cache by its key and value types. reflect.Type
// values are comparable and unique per type, so two types that print the
// same name still get separate caches.
type signature struct {
	key   reflect.Type
	value reflect.Type
}

func (s signature) String() string {
	return typeName(s.key) + " -> " + typeName(s.value)
}

func typeName(t reflect.Type) string {
	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Registry hands out one shared Cache per (K, V) type pair.
type Registry struct {
	mu     sync.Mutex
	cfg    Config
	caches map[signature]any
}

// NewRegistry creates an empty registry. Every cache it creates is sized
// by cfg.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:    cfg,
		caches: make(map[signature]any),
	}
}

var shared = sync.OnceValue(func() *Registry {
	return NewRegistry(Config{Size: DefaultSize})
})

// Shared returns the process-wide registry.
func Shared() *Registry {
	return shared()
}

// GetCache returns the registry's cache for K and V, creating it on first
// use. Concurrent first calls for the same pair all receive the same cache.
func GetCache[K comparable, V any](r *Registry) *Cache[K, V] {
	sig := signature{
		key:   reflect.TypeFor[K](),
		value: reflect.TypeFor[V](),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.caches[sig]; ok {
		return c.(*Cache[K, V])
	}

	c := New[K, V](r.cfg)
	r.caches[sig] = c
	log.WithField("signature", sig.String()).Debug("memcache: created cache")
	return c
}

// Signatures lists the type pairs that currently have a cache, sorted.
func (r *Registry) Signatures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.caches))
	for sig := range r.caches {
		out = append(out, sig.String())
	}
	sort.Strings(out)
	return out
}

// Len returns the number of caches held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}

// Purge empties every cache the registry holds. The caches stay registered.
func (r *Registry) Purge() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.caches {
		if p, ok := c.(interface{ Purge() }); ok {
			p.Purge()
		}
	}
}

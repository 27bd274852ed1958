// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package memcache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/staranto/prefcache/internal/option"
)

// DefaultSize bounds a cache when Config.Size is left at zero.
const DefaultSize = 1024

// Config sizes a cache. Size is an entry count, not bytes. A zero TTL means
// entries only leave through eviction or Remove.
type Config struct {
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
	Metrics Metrics       `yaml:"-"`
}

// Cache is an in-process map from K to V. Entries can disappear at any time,
// either because the LRU bound pushed them out or because their TTL passed.
// All methods are safe for concurrent use.
type Cache[K comparable, V any] struct {
	lru     *expirable.LRU[K, V]
	metrics Metrics
	sf      singleflight.Group
}

// New creates a cache sized by cfg.
func New[K comparable, V any](cfg Config) *Cache[K, V] {
	size := cfg.Size
	if size <= 0 {
		size = DefaultSize
	}
	m := cfg.Metrics
	if m == nil {
		m = NoopMetrics{}
	}
	return &Cache[K, V]{
		lru:     expirable.NewLRU[K, V](size, nil, cfg.TTL),
		metrics: m,
	}
}

// Get returns the cached value, or false if it was never set, was removed,
// or has been evicted.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.metrics.Hit()
	} else {
		c.metrics.Miss()
	}
	return v, ok
}

// Set inserts or overwrites the entry for key. The value is stored as given,
// even when it is itself an absent Option or a nil pointer.
func (c *Cache[K, V]) Set(key K, value V) {
	if evicted := c.lru.Add(key, value); evicted {
		c.metrics.Eviction()
	}
}

// Remove deletes the entry for key. Removing a missing key is a no-op.
func (c *Cache[K, V]) Remove(key K) {
	c.lru.Remove(key)
}

// Lookup is Get expressed as an Option.
func (c *Cache[K, V]) Lookup(key K) option.Option[V] {
	return option.FromPair(c.Get(key))
}

// Assign sets key to the wrapped value, or removes it when value is None.
func (c *Cache[K, V]) Assign(key K, value option.Option[V]) {
	if v, ok := value.Get(); ok {
		c.Set(key, v)
		return
	}
	c.Remove(key)
}

// GetOrLoad returns the cached value for key. On a miss it calls load,
// caches a successful result and returns it. Concurrent misses on the same
// key share one load call.
func (c *Cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	// The type is part of the flight key so that keys printing alike, such
	// as int(1) and int64(1) in a Cache[any, V], load separately.
	res, err, _ := c.sf.Do(fmt.Sprintf("%T\x00%#v", key, key), func() (any, error) {
		if v, ok := c.lru.Peek(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

// Len returns the number of entries, which may include expired entries that
// have not been reaped yet.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Keys returns the live keys from oldest to newest.
func (c *Cache[K, V]) Keys() []K {
	return c.lru.Keys()
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}

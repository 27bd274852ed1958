// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package memcache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/prefcache/internal/option"
)

func TestCache_SetGetRemove(t *testing.T) {
	c := New[string, int](Config{Size: 10})

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v, "set overwrites")

	c.Remove("a")
	_, ok = c.Get("a")
	assert.False(t, ok)

	// Removing twice is the same as removing once.
	c.Remove("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_AssignAndLookup(t *testing.T) {
	c := New[string, string](Config{})

	c.Assign("theme", option.Some("dark"))
	assert.Equal(t, option.Some("dark"), c.Lookup("theme"))

	c.Assign("theme", option.None[string]())
	assert.True(t, c.Lookup("theme").IsNone())
}

func TestCache_StoresAbsentValuesAsIs(t *testing.T) {
	c := New[string, option.Option[int]](Config{})

	c.Set("k", option.None[int]())
	v, ok := c.Get("k")
	require.True(t, ok, "an absent Option is still a stored value")
	assert.True(t, v.IsNone())

	// Assigning Some(None) stores None; it does not remove the entry.
	c.Assign("k", option.Some(option.None[int]()))
	_, ok = c.Get("k")
	assert.True(t, ok)

	p := New[string, *int](Config{})
	p.Set("nil", nil)
	got, ok := p.Get("nil")
	assert.True(t, ok)
	assert.Nil(t, got)
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	m := &CountingMetrics{}
	c := New[string, int](Config{Size: 2, Metrics: m})

	c.Set("k1", 1)
	c.Set("k2", 2)
	_, _ = c.Get("k1") // k2 is now the oldest
	c.Set("k3", 3)

	_, ok := c.Get("k2")
	assert.False(t, ok)
	_, ok = c.Get("k1")
	assert.True(t, ok)
	_, ok = c.Get("k3")
	assert.True(t, ok)

	hits, misses, evictions := m.Snapshot()
	assert.Equal(t, int64(3), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, int64(1), evictions)
	assert.Equal(t, []string{"k1", "k3"}, c.Keys())
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New[string, string](Config{Size: 4, TTL: 20 * time.Millisecond})
	c.Set("session", "abc")

	v, ok := c.Get("session")
	require.True(t, ok)
	assert.Equal(t, "abc", v)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get("session")
	assert.False(t, ok)
}

func TestCache_Purge(t *testing.T) {
	c := New[int, int](Config{})
	for i := 0; i < 5; i++ {
		c.Set(i, i*i)
	}
	assert.Equal(t, 5, c.Len())
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCache_GetOrLoad(t *testing.T) {
	c := New[string, string](Config{})

	var calls atomic.Int32
	release := make(chan struct{})
	load := func() (string, error) {
		calls.Add(1)
		<-release
		return "loaded", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrLoad("key", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "loaded", r)
	}

	// A cached value short-circuits the loader.
	v, err := c.GetOrLoad("key", func() (string, error) {
		t.Fatal("loader should not run")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "loaded", v)
}

func TestCache_GetOrLoadError(t *testing.T) {
	c := New[string, *string](Config{})
	boom := errors.New("boom")

	_, err := c.GetOrLoad("k", func() (*string, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len(), "failed loads are not cached")

	v, err := c.GetOrLoad("k", func() (*string, error) { return nil, nil })
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 1, c.Len())
}

func TestCache_GetOrLoadKeysThatPrintAlike(t *testing.T) {
	type label string
	c := New[any, string](Config{})

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		v, err := c.GetOrLoad(int(1), func() (string, error) {
			close(started)
			<-release
			return "int", nil
		})
		assert.NoError(t, err)
		done <- v
	}()

	// int64(1) must not join the in-flight load for int(1).
	<-started
	v, err := c.GetOrLoad(int64(1), func() (string, error) { return "int64", nil })
	require.NoError(t, err)
	assert.Equal(t, "int64", v)

	v, err = c.GetOrLoad(label("x"), func() (string, error) { return "label", nil })
	require.NoError(t, err)
	assert.Equal(t, "label", v)
	v, err = c.GetOrLoad("x", func() (string, error) { return "string", nil })
	require.NoError(t, err)
	assert.Equal(t, "string", v)

	close(release)
	assert.Equal(t, "int", <-done)

	for key, want := range map[any]string{int(1): "int", int64(1): "int64", label("x"): "label", "x": "string"} {
		got, ok := c.Get(key)
		assert.True(t, ok, "%T(%v) cached", key, key)
		assert.Equal(t, want, got)
	}
}

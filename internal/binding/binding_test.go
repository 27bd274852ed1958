// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package binding

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/prefcache/internal/memcache"
	"github.com/staranto/prefcache/internal/option"
	"github.com/staranto/prefcache/internal/prefs"
)

func newStore() *prefs.Store {
	return prefs.New(prefs.NewMemoryBackend())
}

func TestProperty_UsernameScenario(t *testing.T) {
	ctx := context.Background()
	st := newStore()

	p := NewProperty(Durable[string](ctx, st, "username"), "Guest")
	assert.Equal(t, "username", p.Key())
	assert.Equal(t, "Guest", p.Get())

	p.Set("Brandon")
	assert.Equal(t, "Brandon", p.Get())

	// A second binding on the same key sees the durable value.
	other := NewProperty(Durable[string](ctx, st, "username"), "Nobody")
	assert.Equal(t, "Brandon", other.Get())

	p.Remove()
	assert.Equal(t, "Guest", p.Get())
	assert.Equal(t, "Nobody", other.Get())
}

func TestState_UsernameScenario(t *testing.T) {
	ctx := context.Background()
	st := newStore()

	s := NewState(Durable[string](ctx, st, "username"), "Guest")
	assert.Equal(t, "Guest", s.Get())

	s.Set("Brandon")
	assert.Equal(t, "Brandon", s.Get())
	v, ok := prefs.GetValue[string](ctx, st, "username")
	assert.True(t, ok)
	assert.Equal(t, "Brandon", v)

	s.Remove()
	assert.Equal(t, "Guest", s.Get())
	_, ok = prefs.GetValue[string](ctx, st, "username")
	assert.False(t, ok)
}

func TestState_SyncsAtConstruction(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	prefs.SetValue(ctx, st, "theme", "dark")

	s := NewState(Durable[string](ctx, st, "theme"), "light")
	assert.Equal(t, "dark", s.Get())

	prefs.SetValue(ctx, st, "theme", "solarized")
	assert.Equal(t, "dark", s.Get(), "reads come from the local copy")
	s.Sync()
	assert.Equal(t, "solarized", s.Get())
}

func TestOptional_NilWriteRemovesRecord(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	be := st.Backend()

	p := NewOptionalProperty(Durable[option.Option[int]](ctx, st, "volume"))
	assert.True(t, p.Get().IsNone())

	p.Set(option.Some(7))
	got, ok := p.Get().Get()
	assert.True(t, ok)
	assert.Equal(t, 7, got)

	p.Set(option.None[int]())
	assert.True(t, p.Get().IsNone())
	_, present, err := be.Read(ctx, "volume")
	require.NoError(t, err)
	assert.False(t, present, "None must remove the record, not store null")

	s := NewOptionalState(Durable[option.Option[int]](ctx, st, "volume"))
	s.Set(option.Some(3))
	s.Set(option.None[int]())
	assert.True(t, s.Get().IsNone())
	_, present, err = be.Read(ctx, "volume")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestPointer_NilWriteReturnsDefault(t *testing.T) {
	ctx := context.Background()
	st := newStore()

	def := "fallback"
	p := NewProperty(Durable[*string](ctx, st, "nick"), &def)

	name := "bran"
	p.Set(&name)
	require.NotNil(t, p.Get())
	assert.Equal(t, "bran", *p.Get())

	p.Set(nil)
	require.NotNil(t, p.Get())
	assert.Equal(t, "fallback", *p.Get(), "default, not a stored null")

	s := NewState(Durable[*string](ctx, st, "nick"), &def)
	s.Set(&name)
	s.Set(nil)
	assert.Equal(t, "fallback", *s.Get())
}

func TestMemoryBacking(t *testing.T) {
	r := memcache.NewRegistry(memcache.Config{Size: 8})

	p := NewProperty(CachedMemory[int](r, "user_id"), -1)
	assert.Equal(t, -1, p.Get())
	p.Set(42)

	// The registry hands out the same cache, so a fresh binding sees 42.
	s := NewState(CachedMemory[int](r, "user_id"), -1)
	assert.Equal(t, 42, s.Get())

	c := memcache.GetCache[string, int](r)
	v, ok := c.Get("user_id")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	s.Remove()
	assert.Equal(t, -1, p.Get())
}

func TestMemoryBacking_NilWrite(t *testing.T) {
	c := memcache.New[string, []string](memcache.Config{Size: 8})
	p := NewProperty(Memory(c, "tags"), []string{"default"})

	p.Set([]string{"a", "b"})
	assert.Equal(t, 1, c.Len())
	p.Set(nil)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []string{"default"}, p.Get())
}

func TestState_Observe(t *testing.T) {
	s := NewState(Memory(memcache.New[string, string](memcache.Config{Size: 8}), "k"), "zero")

	var seen []string
	cancel := s.Observe(func(v string) {
		seen = append(seen, v)
		assert.Equal(t, v, s.Get(), "local copy is updated before observers run")
	})

	s.Set("one")
	s.Set("two")
	s.Remove()
	s.Sync()
	cancel()
	s.Set("three")

	assert.Equal(t, []string{"one", "two", "zero", "zero"}, seen)
	assert.Equal(t, "three", s.Get())
}

func TestCell_TwoWay(t *testing.T) {
	ctx := context.Background()
	st := newStore()
	s := NewState(Durable[string](ctx, st, "username"), "Guest")

	cell := s.Cell()
	assert.Equal(t, "Guest", cell.Get())
	cell.Set("Brandon")
	assert.Equal(t, "Brandon", s.Get())

	pc := NewProperty(Durable[string](ctx, st, "username"), "Guest").Cell()
	assert.Equal(t, "Brandon", pc.Get())
	pc.Set("Ada")
	s.Sync()
	assert.Equal(t, "Ada", cell.Get())
}

func TestState_ConcurrentSet(t *testing.T) {
	s := NewState(Memory(memcache.New[string, int](memcache.Config{Size: 8}), "n"), 0)

	var mu sync.Mutex
	calls := 0
	s.Observe(func(int) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n)
			_ = s.Get()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, calls)
	assert.NotZero(t, s.Get())
}

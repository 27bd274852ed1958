// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package memcache

import "sync/atomic"

// Metrics receives cache lifecycle events. Implementations must be safe for
// concurrent use.
type Metrics interface {
	// Hit is called when Get finds a live entry.
	Hit()
	// Miss is called when Get finds nothing, including expired entries.
	Miss()
	// Eviction is called when an insert pushes the oldest entry out.
	Eviction()
}

// NoopMetrics ignores every event.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}

// CountingMetrics keeps running totals.
type CountingMetrics struct {
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func (m *CountingMetrics) Hit()      { m.hits.Add(1) }
func (m *CountingMetrics) Miss()     { m.misses.Add(1) }
func (m *CountingMetrics) Eviction() { m.evictions.Add(1) }

// Snapshot returns the current hit, miss and eviction counts.
func (m *CountingMetrics) Snapshot() (hits, misses, evictions int64) {
	return m.hits.Load(), m.misses.Load(), m.evictions.Load()
}

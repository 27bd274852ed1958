// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

/*
Package binding provides typed accessors bound to a single key in either a
durable prefs.Store or a memcache.Cache.

Property reads and writes straight through. State keeps a local copy for
reactive UIs, notifies observers registered with Observe, and writes
through on every assignment.

Both treat an assignment of "no value" (a nil pointer, map, slice or
interface, or option.None) as a removal of the backing record, so a later
read returns the configured default rather than a stored null.

	st := binding.NewState(binding.Durable[string](ctx, store, "username"), "Guest")
	cancel := st.Observe(func(v string) { fmt.Println("now", v) })
	defer cancel()
	st.Set("Brandon")
*/
package binding

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package memcache provides the bounded in-memory cache and the registry
// that keeps a single cache per key/value type pair.
package memcache

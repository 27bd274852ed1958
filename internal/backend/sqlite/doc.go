// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package sqlite implements the preferences backend on a single SQLite
// table using the pure-Go modernc.org/sqlite driver.
package sqlite

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package prefs implements the durable key-value store: typed values are
// encoded by a codec and kept as bytes in a pluggable Backend.
package prefs

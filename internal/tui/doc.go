// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tui is the interactive editor behind prefctl edit. It renders a
// binding.State and re-renders whenever the state reports a change.
package tui

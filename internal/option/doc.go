// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package option provides a tagged optional value and the helper used by the
// stores and bindings to decide when a write means "remove".
package option

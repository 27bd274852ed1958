// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

// Package backend selects and builds the durable preferences backend (file,
// sqlite, s3 or memory) from config.Settings and opens a prefs.Store on it.
package backend

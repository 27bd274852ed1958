// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders stored values and key listings for prefctl
// commands: text, json and yaml value rendering, gjson path selection, the
// ls table with its filters and sort order, and JSON diffs.
package output

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package importer reads preference values from HCL files for prefctl
// import. Every top-level attribute is one key; its value is converted to
// JSON through go-cty.
package importer

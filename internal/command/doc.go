// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for prefctl. It wires flags,
// validators, actions, and shell completion for subcommands. Every command
// opens the store selected by the store flags, reads through the run's cache
// registry and closes the store before returning.
package command

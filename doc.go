// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// prefcache is the main package for the prefctl command line tool. prefctl
// reads and writes typed preference values kept in a durable store (a
// directory, a sqlite database, or an S3 bucket), caches them in memory for
// the life of a run, and offers an interactive editor bound to a single key.
package main

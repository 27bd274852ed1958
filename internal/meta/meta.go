// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/prefcache/internal/config"
	"github.com/staranto/prefcache/internal/memcache"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args     []string
	Config   config.Type
	Context  context.Context
	Settings config.Settings
	// Registry holds the in-process caches shared by commands in this run.
	Registry *memcache.Registry
}

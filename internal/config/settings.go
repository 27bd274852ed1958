// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings selects and configures the store backend. Values come from the
// "store" section of the config file and are overridden by PREFCTL_*
// environment variables.
type Settings struct {
	Backend   string        `env:"PREFCTL_BACKEND"`
	Dir       string        `env:"PREFCTL_STORE_DIR"`
	DB        string        `env:"PREFCTL_DB"`
	Bucket    string        `env:"PREFCTL_BUCKET"`
	Prefix    string        `env:"PREFCTL_PREFIX"`
	Region    string        `env:"PREFCTL_REGION"`
	Endpoint  string        `env:"PREFCTL_ENDPOINT"`
	Profile   string        `env:"PREFCTL_PROFILE"`
	Codec     string        `env:"PREFCTL_CODEC"`
	Secret    string        `env:"PREFCTL_SECRET"`
	CacheSize int           `env:"PREFCTL_CACHE_SIZE"`
	CacheTTL  time.Duration `env:"PREFCTL_CACHE_TTL"`
}

const (
	DefaultBackend   = "file"
	DefaultCodec     = "json"
	DefaultPrefix    = "prefctl/"
	DefaultCacheSize = 1024
)

// LoadSettings builds Settings from the loaded Config and the process
// environment.
func LoadSettings() (Settings, error) {
	return loadSettings(env.Options{})
}

func loadSettings(opts env.Options) (Settings, error) {
	s := Settings{}
	s.Backend, _ = GetString("store.backend", "")
	s.Dir, _ = GetString("store.dir", "")
	s.DB, _ = GetString("store.db", "")
	s.Bucket, _ = GetString("store.bucket", "")
	s.Prefix, _ = GetString("store.prefix", "")
	s.Region, _ = GetString("store.region", "")
	s.Endpoint, _ = GetString("store.endpoint", "")
	s.Profile, _ = GetString("store.profile", "")
	s.Codec, _ = GetString("store.codec", "")
	s.CacheSize, _ = GetInt("cache.size", 0)
	s.CacheTTL, _ = GetDuration("cache.ttl", 0)

	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}

	s.applyDefaults()
	return s, nil
}

func (s *Settings) applyDefaults() {
	if s.Backend == "" {
		s.Backend = DefaultBackend
	}
	if s.Codec == "" {
		s.Codec = DefaultCodec
	}
	if s.Prefix == "" {
		s.Prefix = DefaultPrefix
	}
	if s.CacheSize <= 0 {
		s.CacheSize = DefaultCacheSize
	}
	if s.Dir == "" {
		s.Dir = DefaultStoreDir()
	}
	if s.DB == "" {
		s.DB = filepath.Join(s.Dir, "prefs.db")
	}
}

// DefaultStoreDir is os.UserConfigDir()/prefctl, or ./.prefctl when the
// user config dir cannot be resolved.
func DefaultStoreDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "prefctl")
	}
	return ".prefctl"
}

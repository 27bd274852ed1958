// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package file

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/prefcache/internal/prefs"
)

const (
	suffix      = ".pref"
	maxNameLen  = 255
	tempPattern = ".tmp-*"
)

// Store keeps one file per key beneath a base directory. File names are
// the base64url encoding of the key, so keys can be listed back.
type Store struct {
	base string
}

var (
	_ prefs.Backend = (*Store)(nil)
	_ prefs.Stater  = (*Store)(nil)
)

// New returns a Store rooted at base, creating the directory if needed.
func New(base string) (*Store, error) {
	if strings.TrimSpace(base) == "" {
		return nil, errors.New("store directory is required")
	}
	if err := os.MkdirAll(base, 0o700); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{base: filepath.Clean(base)}, nil
}

// Dir returns the base directory.
func (s *Store) Dir() string { return s.base }

func (s *Store) entryPath(key string) (string, string, error) {
	k, err := prefs.CheckKey(key)
	if err != nil {
		return "", "", err
	}
	name := encodeKey(k)
	if len(name) > maxNameLen {
		return "", "", fmt.Errorf("%w: key too long for file store", prefs.ErrInvalidKey)
	}
	return k, filepath.Join(s.base, name), nil
}

func (s *Store) Read(_ context.Context, key string) ([]byte, bool, error) {
	_, p, err := s.entryPath(key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return b, true, nil
}

// Write replaces the record atomically: data goes to a temp file in the same
// directory which is then renamed over the entry.
func (s *Store) Write(_ context.Context, key string, data []byte) error {
	_, p, err := s.entryPath(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.base, tempPattern)
	if err != nil {
		return fmt.Errorf("failed to write to store: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write to store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write to store: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write to store: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	_, p, err := s.entryPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		k, err := decodeKey(e.Name())
		if err != nil {
			log.Debugf("skipping foreign file %s", e.Name())
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Stat(_ context.Context, key string) (prefs.Info, bool, error) {
	k, p, err := s.entryPath(key)
	if err != nil {
		return prefs.Info{}, false, err
	}
	fi, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs.Info{}, false, nil
	}
	if err != nil {
		return prefs.Info{}, false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return prefs.Info{Key: k, Size: fi.Size(), ModTime: fi.ModTime()}, true, nil
}

// Purge removes records not modified within maxAge and returns how many
// were removed. A maxAge <= 0 disables purging.
func (s *Store) Purge(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		log.Debug("store purging disabled")
		return 0, nil
	}

	entries, err := os.ReadDir(s.base)
	if err != nil {
		return 0, fmt.Errorf("failed to purge store: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		info, err := e.Info()
		if err != nil || time.Since(info.ModTime()) <= maxAge {
			continue
		}
		path := filepath.Join(s.base, e.Name())
		if err := os.Remove(path); err == nil {
			removed++
			log.Debugf("removed store file %s", path)
		} else {
			log.WithError(err).Warnf("failed to remove store file %s", path)
		}
	}
	return removed, nil
}

// encodeKey maps a key to its file name.
func encodeKey(k string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(k)) + suffix
}

func decodeKey(name string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(name, suffix))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

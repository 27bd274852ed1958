// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prefs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrInvalidKey is returned by backends for empty or malformed keys.
var ErrInvalidKey = errors.New("invalid key")

// Backend is the byte-oriented persistence service behind a Store. Read
// reports a missing key as (nil, false, nil); Delete of a missing key is not
// an error.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Info describes a stored record.
type Info struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Stater is implemented by backends that can describe a record without
// reading it.
type Stater interface {
	Stat(ctx context.Context, key string) (Info, bool, error)
}

// Purger is implemented by backends that can drop records not modified
// within maxAge. It returns the number of records removed.
type Purger interface {
	Purge(maxAge time.Duration) (int, error)
}

// CheckKey trims key and rejects empty keys and keys containing control
// characters.
func CheckKey(key string) (string, error) {
	k := strings.TrimSpace(key)
	if k == "" {
		return "", fmt.Errorf("%w: key is required", ErrInvalidKey)
	}
	if strings.IndexFunc(k, func(r rune) bool { return r < 0x20 || r == 0x7f }) >= 0 {
		return "", fmt.Errorf("%w: %q contains control characters", ErrInvalidKey, k)
	}
	return k, nil
}

type memoryRecord struct {
	data    []byte
	modTime time.Time
}

// MemoryBackend keeps records in a map. It persists nothing and is meant for
// tests and throwaway sessions.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]memoryRecord)}
}

func (m *MemoryBackend) Read(_ context.Context, key string) ([]byte, bool, error) {
	k, err := CheckKey(key)
	if err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[k]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), rec.data...), true, nil
}

func (m *MemoryBackend) Write(_ context.Context, key string, data []byte) error {
	k, err := CheckKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[k] = memoryRecord{data: append([]byte(nil), data...), modTime: time.Now()}
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	k, err := CheckKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, k)
	return nil
}

func (m *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.records))
	for k := range m.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryBackend) Stat(_ context.Context, key string) (Info, bool, error) {
	k, err := CheckKey(key)
	if err != nil {
		return Info{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[k]
	if !ok {
		return Info{}, false, nil
	}
	return Info{Key: k, Size: int64(len(rec.data)), ModTime: rec.modTime}, true, nil
}

func (m *MemoryBackend) Purge(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, rec := range m.records {
		if time.Since(rec.modTime) > maxAge {
			delete(m.records, k)
			removed++
		}
	}
	return removed, nil
}

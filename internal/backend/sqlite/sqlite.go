// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	_ "modernc.org/sqlite"

	"github.com/staranto/prefcache/internal/prefs"
)

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store keeps preference records in a single SQLite table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ prefs.Backend = (*Store)(nil)
	_ prefs.Stater  = (*Store)(nil)
)

// Open opens (creating if needed) the database at path and ensures the
// preferences table exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path is required")
	}

	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o700); err != nil { //nolint:mnd
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := clean + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	log.Debugf("opened sqlite store %s", clean)
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	k, err := prefs.CheckKey(key)
	if err != nil {
		return nil, false, err
	}

	var data []byte
	err = s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, k).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read preference: %w", err)
	}
	return data, true, nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	k, err := prefs.CheckKey(key)
	if err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		    value = excluded.value,
		    updated_at = excluded.updated_at`,
		k, data, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("write preference: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	k, err := prefs.CheckKey(key)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, k); err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan preference key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}
	return keys, nil
}

func (s *Store) Stat(ctx context.Context, key string) (prefs.Info, bool, error) {
	k, err := prefs.CheckKey(key)
	if err != nil {
		return prefs.Info{}, false, err
	}

	var size, updated int64
	err = s.db.QueryRowContext(ctx,
		`SELECT length(value), updated_at FROM preferences WHERE key = ?`, k,
	).Scan(&size, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs.Info{}, false, nil
	}
	if err != nil {
		return prefs.Info{}, false, fmt.Errorf("stat preference: %w", err)
	}
	return prefs.Info{Key: k, Size: size, ModTime: time.UnixMilli(updated)}, true, nil
}

// Purge deletes records not updated within maxAge. A maxAge <= 0 disables
// purging.
func (s *Store) Purge(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-maxAge).UnixMilli()
	res, err := s.db.Exec(`DELETE FROM preferences WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge preferences: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge preferences: %w", err)
	}
	return int(n), nil
}

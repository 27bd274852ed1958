// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prefs

import (
	"context"

	"github.com/apex/log"

	"github.com/staranto/prefcache/internal/codec"
	"github.com/staranto/prefcache/internal/option"
)

// Store reads and writes typed values through a Backend. It never returns
// errors to its callers: encode, decode and backend failures are logged and
// the operation behaves as if it had no effect.
type Store struct {
	backend Backend
	codec   codec.Codec
	log     log.Interface
}

// Option customizes a Store.
type Option func(*Store)

// WithCodec replaces the default JSON codec.
func WithCodec(c codec.Codec) Option {
	return func(s *Store) { s.codec = c }
}

// WithLogger routes the store's warnings to l instead of the apex default.
func WithLogger(l log.Interface) Option {
	return func(s *Store) { s.log = l }
}

// New wraps a backend.
func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		codec:   codec.JSON{},
		log:     log.Log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend exposes the underlying backend for callers that need raw bytes
// and real errors.
func (s *Store) Backend() Backend { return s.backend }

// Codec returns the codec values are encoded with.
func (s *Store) Codec() codec.Codec { return s.codec }

// Keys lists stored keys, or nil if the backend cannot list them.
func (s *Store) Keys(ctx context.Context) []string {
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.log.WithError(err).Warn("prefs: list keys failed")
		return nil
	}
	return keys
}

// Status says what Lookup found.
type Status int

const (
	// Absent means there is no record for the key, or the backend could not
	// be read.
	Absent Status = iota
	// Present means the record decoded as the requested type.
	Present
	// Undecodable means a record exists but does not decode as the requested
	// type.
	Undecodable
)

func (st Status) String() string {
	switch st {
	case Present:
		return "present"
	case Undecodable:
		return "undecodable"
	}
	return "absent"
}

// Result is the outcome of a Lookup. Err carries the backend or decode error
// behind an Absent or Undecodable status.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

// Lookup reads key and decodes it as T, reporting absence and decode
// failures separately.
func Lookup[T any](ctx context.Context, s *Store, key string) Result[T] {
	var r Result[T]

	data, ok, err := s.backend.Read(ctx, key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("prefs: read failed")
		r.Err = err
		return r
	}
	if !ok {
		return r
	}

	var v T
	if err := s.codec.Unmarshal(data, &v); err != nil {
		s.log.WithError(err).WithFields(log.Fields{
			"key":   key,
			"codec": s.codec.Name(),
		}).Warn("prefs: decode failed")
		r.Status = Undecodable
		r.Err = err
		return r
	}

	r.Value = v
	r.Status = Present
	return r
}

// GetValue returns the value stored under key. A missing record and a
// record that does not decode as T both report false.
func GetValue[T any](ctx context.Context, s *Store, key string) (T, bool) {
	r := Lookup[T](ctx, s, key)
	return r.Value, r.Status == Present
}

// GetOption is GetValue expressed as an Option.
func GetOption[T any](ctx context.Context, s *Store, key string) option.Option[T] {
	return option.FromPair(GetValue[T](ctx, s, key))
}

// SetValue encodes value and stores it under key, replacing any previous
// record. A nil value or an absent Option removes the record instead. If
// the value cannot be encoded the write is dropped.
func SetValue[T any](ctx context.Context, s *Store, key string, value T) {
	if option.IsNil(value) {
		RemoveValue(ctx, s, key)
		return
	}

	data, err := s.codec.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithFields(log.Fields{
			"key":   key,
			"codec": s.codec.Name(),
		}).Warn("prefs: encode failed, write dropped")
		return
	}

	if err := s.backend.Write(ctx, key, data); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("prefs: write failed")
	}
}

// SetOption stores the wrapped value, or removes key when v is None.
func SetOption[T any](ctx context.Context, s *Store, key string, v option.Option[T]) {
	if val, ok := v.Get(); ok {
		SetValue(ctx, s, key, val)
		return
	}
	RemoveValue(ctx, s, key)
}

// RemoveValue deletes the record for key. Removing a missing key is a
// no-op.
func RemoveValue(ctx context.Context, s *Store, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("prefs: delete failed")
	}
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/prefcache/internal/backend/file"
	"github.com/staranto/prefcache/internal/backend/s3"
	"github.com/staranto/prefcache/internal/backend/sqlite"
	"github.com/staranto/prefcache/internal/codec"
	"github.com/staranto/prefcache/internal/config"
	"github.com/staranto/prefcache/internal/prefs"
)

// ErrUnknownBackend is returned by New for an unrecognised backend type.
var ErrUnknownBackend = errors.New("unknown backend")

// Types lists the supported backend types.
var Types = []string{"file", "sqlite", "s3", "memory"}

// New builds the backend selected by s.Backend.
func New(ctx context.Context, s config.Settings) (prefs.Backend, error) {
	typ := strings.ToLower(strings.TrimSpace(s.Backend))
	log.Debugf("NewBackend: type=%s", typ)

	var (
		b   prefs.Backend
		err error
	)
	switch typ {
	case "", "file":
		b, err = orNil(file.New(s.Dir))
	case "sqlite":
		b, err = orNil(sqlite.Open(s.DB))
	case "s3":
		b, err = orNil(s3.New(ctx, s.Bucket,
			s3.WithPrefix(s.Prefix),
			s3.WithRegion(s.Region),
			s3.WithProfile(s.Profile),
			s3.WithEndpoint(s.Endpoint),
		))
	case "memory":
		b = prefs.NewMemoryBackend()
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownBackend, s.Backend, strings.Join(Types, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", typ, err)
	}
	return b, nil
}

// orNil keeps a failed constructor's typed nil out of the interface.
func orNil[B prefs.Backend](b B, err error) (prefs.Backend, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// NewCodec returns the codec named by s.Codec, sealed with s.Secret when one
// is configured.
func NewCodec(s config.Settings) (codec.Codec, error) {
	c, err := codec.ByName(s.Codec)
	if err != nil {
		return nil, err
	}
	if s.Secret == "" {
		return c, nil
	}
	key, err := codec.ParseKey(s.Secret)
	if err != nil {
		return nil, err
	}
	return codec.NewSealed(c, key), nil
}

// Open wires a prefs.Store to the configured backend and codec.
func Open(ctx context.Context, s config.Settings, opts ...prefs.Option) (*prefs.Store, error) {
	c, err := NewCodec(s)
	if err != nil {
		return nil, err
	}
	b, err := New(ctx, s)
	if err != nil {
		return nil, err
	}
	return prefs.New(b, append([]prefs.Option{prefs.WithCodec(c)}, opts...)...), nil
}

// Close releases the store's backend if it holds resources.
func Close(st *prefs.Store) error {
	if st == nil {
		return nil
	}
	if c, ok := st.Backend().(io.Closer); ok {
		return c.Close()
	}
	return nil
}

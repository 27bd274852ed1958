// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the length of a Sealed codec key in bytes.
	KeySize   = 32
	nonceSize = 24
)

// Sealed encrypts the output of an inner codec with NaCl secretbox. The
// nonce is prepended to every sealed payload.
type Sealed struct {
	inner Codec
	key   [KeySize]byte
}

// NewSealed wraps inner so that everything it produces is encrypted with key.
func NewSealed(inner Codec, key [KeySize]byte) *Sealed {
	return &Sealed{inner: inner, key: key}
}

func (s *Sealed) Name() string { return "sealed+" + s.inner.Name() }

func (s *Sealed) Marshal(v any) ([]byte, error) {
	plain, err := s.inner.Marshal(v)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: nonce: %v", ErrEncode, err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

func (s *Sealed) Unmarshal(data []byte, v any) error {
	if len(data) < nonceSize+secretbox.Overhead {
		return fmt.Errorf("%w: sealed payload too short", ErrDecode)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])
	plain, ok := secretbox.Open(nil, data[nonceSize:], &nonce, &s.key)
	if !ok {
		return fmt.Errorf("%w: sealed payload failed authentication", ErrDecode)
	}
	return s.inner.Unmarshal(plain, v)
}

// ParseKey decodes a hex encoded 32 byte key, as held in PREFCTL_SECRET.
func ParseKey(s string) ([KeySize]byte, error) {
	var key [KeySize]byte
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return key, fmt.Errorf("secret is not hex: %w", err)
	}
	if len(raw) != KeySize {
		return key, errors.New("secret must be 32 bytes (64 hex characters)")
	}
	copy(key[:], raw)
	return key, nil
}

// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/megu-datapacks/megu/lib/codec"
	"github.com/megu-datapacks/megu/lib/script"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// scriptKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it changes every fingerprint.
var scriptKey = [32]byte{
	'm', 'e', 'g', 'u', '.', 's', 'c', 'r', 'i', 'p', 't', 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// refPrefix marks the short form returned by Ref.
const refPrefix = "lt-"

// Bytes hashes already-encoded script bytes.
func Bytes(data []byte) Hash {
	hasher, err := blake3.NewKeyed(scriptKey[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// Script returns the fingerprint of s along with the canonical CBOR
// bytes it was computed from.
func Script(s *script.Script) (Hash, []byte, error) {
	data, err := codec.Marshal(s.Encode())
	if err != nil {
		return Hash{}, nil, fmt.Errorf("encoding script for digest: %w", err)
	}
	return Bytes(data), data, nil
}

// String returns the hex encoding of h.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Ref returns the short reference for h: "lt-" and the first 12 hex
// characters.
func (h Hash) Ref() string {
	return refPrefix + hex.EncodeToString(h[:6])
}

// Parse accepts the 64-character hex form produced by String.
func Parse(value string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return hash, fmt.Errorf("parsing script digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("script digest is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// MarshalText implements encoding.TextMarshaler so a Hash appears as
// hex in JSON output.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

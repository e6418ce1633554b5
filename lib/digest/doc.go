// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest fingerprints compiled scripts.
//
// The fingerprint is a BLAKE3 keyed hash of the script's deterministic
// CBOR encoding (see lib/codec), so two compilations that resolve to
// the same pools, removals, and type tag get the same [Hash] no matter
// which files or extension chains produced them. The source path is
// not part of the encoding.
package digest

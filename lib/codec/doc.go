// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the binary output format for compiled scripts.
//
// Scripts are read as JSON, but a compiled result can also be written
// as CBOR. The encoder uses Core Deterministic Encoding, so the same
// compiled script always produces identical bytes; lib/digest
// fingerprints those bytes.
//
// Types keep their json struct tags. fxamacker/cbor falls back to json
// tags when cbor tags are absent, so script.Format and drop.Format use
// the same field names and omitempty rules in both formats.
package codec

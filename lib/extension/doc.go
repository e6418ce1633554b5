// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package extension provides the backing stores that "extend"
// references resolve against. A [Store] maps an identifier to the raw
// source of a base script; decoding and compiling that source is the
// caller's job (see lib/script).
//
// Implementations:
//
//   - [DirStore]: a directory tree laid out as {root}/{prefix}/{suffix}
//     with one of the script file extensions (.megu, .ult, .json.merge)
//   - [MapStore]: in-memory, for tests and programmatic use
//   - [RegistryStore]: one JSONC document keyed by identifier;
//     [Embedded] returns the vanilla registry compiled into the binary
//   - [Chain]: tries stores in order, falling through on [ErrNotFound]
//
// Lookups are never cached. Resolving the same identifier twice reads
// the backing store twice.
package extension

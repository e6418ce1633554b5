// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package drop defines the drop tree: the closed set of drop [Type]s
// and the validated [Node] tree built from a script's pool entries.
//
// Types are identified by minecraft-prefixed identifiers:
//
//	item, tag, loot_table, dynamic, empty    leaf kinds ("safe")
//	group, alternatives, sequence            composite kinds ("unsafe")
//
// Composite kinds hold children and must be acknowledged by the author
// with "unsafe": true. The check is exact in both directions: omitting
// the flag on a composite kind fails, and so does setting it on a leaf
// kind. Both produce [ErrNotAllow].
//
// [Build] validates a raw [Format] recursively and fails fast: the
// first invalid node aborts the whole tree. A node may declare a name
// or children but not both, and only composite kinds may declare
// children.
//
// Conditions and functions are opaque JSON values. They are carried
// through unchanged and never evaluated.
package drop

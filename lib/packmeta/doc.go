// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package packmeta holds the data pack checks that surround script
// compilation: recognising script files by extension, discovering them
// under a directory, and checking that a pack.mcmeta opts into the
// compiler through its compiler_options field.
package packmeta

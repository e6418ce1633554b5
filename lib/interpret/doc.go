// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package interpret is the entry point for turning loot table script
// files into one resolved script.
//
// [Interpreter.InterpretFile] checks that the path is an existing
// regular file, then reads, validates, and compiles it through the
// configured [script.Resolver]. [Interpreter.Combine] merges compiled
// scripts in the order given (the last definition of a pool wins) and
// applies every removal once at the end. [Interpreter.CombineFiles]
// does both for a list of paths.
//
// Every failure is returned as an [Error] naming the path; the chain
// underneath unwraps to the sentinels of lib/script, lib/extension,
// lib/drop, and lib/namespace.
package interpret

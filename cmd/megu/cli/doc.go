// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command-line framework for the megu binary.
//
// The central type is [Command]: a named node with optional
// [Command.Subcommands], a [pflag.FlagSet] factory, and a Run function.
// Commands are assembled into a tree in cmd/megu/commands and dispatched
// via [Command.Execute], which handles flag parsing, subcommand routing,
// and help output with examples. Unknown subcommands and flags get a
// "did you mean" suggestion by Levenshtein distance.
//
// Flags are declared as tagged struct fields and bound with
// [FlagsFromParams]; embedding [JSONOutput] adds --json.
//
// [NewCommandLogger] picks a text or JSON slog handler depending on
// whether stderr is a terminal, and [RenderError] highlights the quoted
// values in an error message when color is available.
package cli

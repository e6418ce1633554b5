// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Megu compiles loot table scripts into resolved loot tables.
//
// See `megu --help` for the command list.
package main

import (
	"os"

	"github.com/megu-datapacks/megu/cmd/megu/cli"
	"github.com/megu-datapacks/megu/cmd/megu/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that already printed their own report return an
		// ExitError carrying the code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		cli.RenderError(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}

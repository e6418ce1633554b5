// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/megu-datapacks/megu/cmd/megu/cli"
	"github.com/megu-datapacks/megu/lib/packmeta"
)

type metaParams struct {
	cli.JSONOutput
}

func metaCommand(stdout, stderr io.Writer) *cli.Command {
	var params metaParams
	return &cli.Command{
		Name:    "meta",
		Summary: "Check that a pack.mcmeta opts into compilation",
		Description: `Meta reads a data pack's pack.mcmeta and fails unless it has a
compiler_options field. The declared options are printed.`,
		Usage: "megu meta [flags] <pack.mcmeta>",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("meta", &params) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("meta: exactly one pack.mcmeta path is required")
			}
			return runMeta(&params, args[0], stdout)
		},
	}
}

func runMeta(params *metaParams, path string, stdout io.Writer) error {
	options, err := packmeta.CheckMeta(path)
	if err != nil {
		return err
	}
	if done, err := params.EmitJSON(stdout, options); done {
		return err
	}
	if len(options) == 0 {
		fmt.Fprintf(stdout, "%s: compiler_options present (empty)\n", path)
		return nil
	}
	fmt.Fprintf(stdout, "%s: compiler_options\n", path)
	for _, option := range options {
		fmt.Fprintf(stdout, "  %s\n", option.Name)
	}
	return nil
}

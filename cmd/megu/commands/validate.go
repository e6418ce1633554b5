// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/megu-datapacks/megu/cmd/megu/cli"
	"github.com/megu-datapacks/megu/lib/digest"
	"github.com/megu-datapacks/megu/lib/script"
)

type validateParams struct {
	commonParams
	cli.JSONOutput
}

// validateResult is one line of `megu validate` output.
type validateResult struct {
	Path   string      `json:"path"`
	Valid  bool        `json:"valid"`
	Error  string      `json:"error,omitempty"`
	Pools  int         `json:"pools,omitempty"`
	Digest digest.Hash `json:"digest,omitzero"`
}

func validateCommand(stdout, stderr io.Writer) *cli.Command {
	var params validateParams
	return &cli.Command{
		Name:    "validate",
		Summary: "Check scripts independently without combining them",
		Description: `Validate interprets every script on its own, resolving its extend
chain, and reports each result. It exits 1 when any script is invalid.`,
		Usage: "megu validate [flags] <script|dir>...",
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("validate", &params) },
		Run: func(args []string) error {
			return runValidate(context.Background(), &params, args, stdout, stderr)
		},
	}
}

func runValidate(ctx context.Context, params *validateParams, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New("validate: at least one script or directory is required")
	}
	session, err := params.open(stderr, "validate")
	if err != nil {
		return err
	}
	paths, err := expandScriptPaths(args)
	if err != nil {
		return err
	}

	interpreter := session.interpreter()
	results := make([]validateResult, 0, len(paths))
	failed := 0
	for _, path := range paths {
		result := validateResult{Path: path}
		compiled, err := interpreter.InterpretFile(ctx, path)
		if err == nil {
			// A single script is checked the way compile would see it,
			// with its removals applied.
			compiled, err = interpreter.Combine(ctx, []*script.Script{compiled})
		}
		if err == nil {
			result.Digest, _, err = digest.Script(compiled)
			result.Pools = len(compiled.Pools)
		}
		if err != nil {
			result.Error = err.Error()
			failed++
		} else {
			result.Valid = true
		}
		results = append(results, result)
	}

	if done, err := params.EmitJSON(stdout, results); done {
		if err != nil {
			return err
		}
	} else {
		renderer := cli.NewErrorRenderer(stdout)
		for _, result := range results {
			if result.Valid {
				fmt.Fprintf(stdout, "ok    %s (%d pools, %s)\n", result.Path, result.Pools, result.Digest.Ref())
				continue
			}
			fmt.Fprintf(stdout, "FAIL  %s\n      %s\n", result.Path, renderer.Format(errors.New(result.Error)))
		}
	}

	session.logger.Info("validated scripts", "scripts", len(paths), "failed", failed)
	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/megu-datapacks/megu/cmd/megu/cli"
	"github.com/megu-datapacks/megu/lib/codec"
	"github.com/megu-datapacks/megu/lib/config"
	"github.com/megu-datapacks/megu/lib/digest"
	"github.com/megu-datapacks/megu/lib/packmeta"
	"github.com/megu-datapacks/megu/lib/script"
)

type compileParams struct {
	commonParams
	Format  string `flag:"format,f" desc:"output format: json, cbor, or diag (default: output.format)"`
	Output  string `flag:"output,o" desc:"write the result to this file instead of stdout"`
	Compact bool   `flag:"compact" desc:"write JSON on a single line"`
	Meta    string `flag:"meta" desc:"pack.mcmeta that must declare compiler_options before anything is compiled"`
}

func compileCommand(stdout, stderr io.Writer) *cli.Command {
	var params compileParams
	return &cli.Command{
		Name:    "compile",
		Summary: "Combine scripts into one resolved loot table",
		Description: `Compile reads each script, resolves its extend chain, and merges the
results in argument order: a later script replaces an earlier script's
pool with the same key. Directories contribute every .megu, .ult, and
.json.merge file beneath them in lexical order. Removals from all
scripts are applied after the last merge.`,
		Usage: "megu compile [flags] <script|dir>...",
		Examples: []cli.Example{
			{Description: "Compile every script in a data pack", Command: "megu compile data/boomber/loot_tables"},
			{Description: "Write canonical CBOR", Command: "megu compile -f cbor -o creeper.cbor creeper.megu"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("compile", &params) },
		Run: func(args []string) error {
			return runCompile(context.Background(), &params, args, stdout, stderr)
		},
	}
}

func runCompile(ctx context.Context, params *compileParams, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New("compile: at least one script or directory is required")
	}
	session, err := params.open(stderr, "compile")
	if err != nil {
		return err
	}
	format := session.config.Output.Format
	if params.Format != "" {
		format = params.Format
	}

	if params.Meta != "" {
		options, err := packmeta.CheckMeta(params.Meta)
		if err != nil {
			return err
		}
		session.logger.Debug("pack metadata accepted", "path", params.Meta, "compiler_options", len(options))
	}

	paths, err := expandScriptPaths(args)
	if err != nil {
		return err
	}
	compiled, err := session.interpreter().CombineFiles(ctx, paths)
	if err != nil {
		return err
	}
	hash, _, err := digest.Script(compiled)
	if err != nil {
		return err
	}

	var buffer bytes.Buffer
	if err := writeScript(&buffer, compiled, format, session.config.Output.Indent && !params.Compact); err != nil {
		return err
	}
	if params.Output != "" {
		if err := os.WriteFile(params.Output, buffer.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", params.Output, err)
		}
	} else if _, err := stdout.Write(buffer.Bytes()); err != nil {
		return err
	}

	session.logger.Info("compiled scripts",
		"scripts", len(paths),
		"pools", len(compiled.Pools),
		"digest", hash.Ref(),
	)
	return nil
}

// expandScriptPaths replaces each directory argument with the scripts
// found beneath it. Other arguments pass through unchanged so that a
// missing or non-regular file is reported by the interpreter.
func expandScriptPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := packmeta.FindScripts(arg)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no loot table scripts under %q", arg)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func writeScript(w io.Writer, compiled *script.Script, format string, indent bool) error {
	encoded := compiled.Encode()
	switch format {
	case config.FormatJSON:
		return cli.WriteJSON(w, encoded, indent)
	case config.FormatCBOR:
		return codec.NewEncoder(w).Encode(encoded)
	case config.FormatDiag:
		data, err := codec.Marshal(encoded)
		if err != nil {
			return err
		}
		diagnostic, err := codec.Diagnose(data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, diagnostic)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want json, cbor, or diag)", format)
	}
}

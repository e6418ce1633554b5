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
	"github.com/megu-datapacks/megu/lib/extension"
	"github.com/megu-datapacks/megu/lib/namespace"
	"github.com/megu-datapacks/megu/lib/script"
)

func extensionCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "extension",
		Summary: "Inspect the base scripts available to extend",
		Subcommands: []*cli.Command{
			extensionListCommand(stdout, stderr),
			extensionShowCommand(stdout, stderr),
		},
	}
}

type extensionListParams struct {
	commonParams
	cli.JSONOutput
}

func extensionListCommand(stdout, stderr io.Writer) *cli.Command {
	var params extensionListParams
	return &cli.Command{
		Name:    "list",
		Summary: "List every extension identifier in the configured stores",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
		Run: func(args []string) error {
			session, err := params.open(stderr, "extension/list")
			if err != nil {
				return err
			}
			lister, ok := session.store.(extension.Lister)
			if !ok {
				return errors.New("configured extension store cannot list identifiers")
			}
			ids, err := lister.IDs()
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(stdout, ids); done {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(stdout, id)
			}
			return nil
		},
	}
}

type extensionShowParams struct {
	commonParams
	Raw     bool `flag:"raw" desc:"print the stored source instead of the compiled result"`
	Compact bool `flag:"compact" desc:"write JSON on a single line"`
}

func extensionShowCommand(stdout, stderr io.Writer) *cli.Command {
	var params extensionShowParams
	return &cli.Command{
		Name:    "show",
		Summary: "Print an extension with its own extend chain resolved",
		Usage:   "megu extension show [flags] <id>",
		Examples: []cli.Example{
			{Description: "Show the vanilla creeper table", Command: "megu extension show entities/creeper"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("show", &params) },
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("extension show: exactly one identifier is required")
			}
			return runExtensionShow(context.Background(), &params, args[0], stdout, stderr)
		},
	}
}

func runExtensionShow(ctx context.Context, params *extensionShowParams, value string, stdout, stderr io.Writer) error {
	session, err := params.open(stderr, "extension/show")
	if err != nil {
		return err
	}
	id, err := namespace.Decode(value)
	if err != nil {
		return &extension.Error{ID: value, Err: err}
	}

	if params.Raw {
		source, err := session.store.Lookup(ctx, id)
		if err != nil {
			return err
		}
		session.logger.Debug("extension source", "id", id.String(), "origin", source.Origin)
		_, err = stdout.Write(source.Data)
		return err
	}

	resolver := script.StoreResolver{Store: session.store, Logger: session.logger}
	base, err := resolver.Resolve(ctx, id)
	if err != nil {
		return err
	}
	compiled, err := base.Compile(ctx, resolver)
	if err != nil {
		return fmt.Errorf("extension %s: %w", id, err)
	}
	return cli.WriteJSON(stdout, compiled.Encode(), !params.Compact)
}

// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/megu-datapacks/megu/cmd/megu/cli"
	"github.com/megu-datapacks/megu/lib/config"
	"github.com/megu-datapacks/megu/lib/extension"
	"github.com/megu-datapacks/megu/lib/interpret"
	"github.com/megu-datapacks/megu/lib/script"
)

// Root returns the megu command tree writing to the process streams.
func Root() *cli.Command {
	return newRoot(os.Stdout, os.Stderr)
}

func newRoot(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "megu",
		Description: "Compile loot table scripts into resolved loot tables.",
		HelpOutput:  stderr,
		Subcommands: []*cli.Command{
			compileCommand(stdout, stderr),
			validateCommand(stdout, stderr),
			metaCommand(stdout, stderr),
			extensionCommand(stdout, stderr),
			versionCommand(stdout),
		},
	}
}

// commonParams are embedded in every command's params.
type commonParams struct {
	Config   string   `json:"-" flag:"config,c" desc:"path to megu.yaml (default: $MEGU_CONFIG)"`
	LogLevel string   `json:"-" flag:"log-level" desc:"override log.level: debug, info, warn, or error"`
	Roots    []string `json:"-" flag:"root" desc:"extension root searched before the configured roots (repeatable)"`
}

// session is the per-invocation state built from commonParams.
type session struct {
	config *config.Config
	logger *slog.Logger
	store  extension.Store
}

func (p *commonParams) open(stderr io.Writer, command string) (*session, error) {
	var cfg *config.Config
	var err error
	if p.Config != "" {
		cfg, err = config.LoadFile(p.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	if len(p.Roots) > 0 {
		cfg.Extensions.Roots = append(append([]string{}, p.Roots...), cfg.Extensions.Roots...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.LogLevel()
	return &session{
		config: cfg,
		logger: cli.NewCommandLogger(stderr, level).With("command", command),
		store:  cfg.ExtensionStore(),
	}, nil
}

func (s *session) interpreter() *interpret.Interpreter {
	return &interpret.Interpreter{
		Resolver: script.StoreResolver{Store: s.store, Logger: s.logger},
		Logger:   s.logger,
	}
}

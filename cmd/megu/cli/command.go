// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// ErrSubcommandRequired is returned when a group such as "megu
// extension" is invoked without naming one of its subcommands.
var ErrSubcommandRequired = errors.New("subcommand required")

// Command is one node of the megu command tree. A node is either a
// group (Subcommands set, Run nil), a leaf (Run set), or a leaf that
// also owns subcommands, in which case Run receives any first argument
// that is not a subcommand name.
type Command struct {
	// Name is the word typed on the command line, e.g. "validate".
	Name string

	// Summary is the single line listed under the parent's Commands.
	Summary string

	// Description is the paragraph at the top of this command's help.
	// Summary is used when it is empty.
	Description string

	// Usage replaces the generated "megu <path> [flags]" line.
	Usage string

	Examples []Example

	// Flags builds the command's flag set. It is called once per parse
	// and once per help render, so each call returns a new set.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	Run func(args []string) error

	// HelpOutput is where help text goes. Commands without one use the
	// nearest ancestor's, then os.Stderr.
	HelpOutput io.Writer

	parent *Command
}

// Example pairs an invocation with a short caption for help output.
type Example struct {
	Description string
	Command     string
}

// Execute walks args down the command tree and runs the command it
// lands on. "-h", "--help" and "help" in first position print help
// for the current node instead.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.helpOutput())
		return nil
	}

	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if sub := c.subcommand(args[0]); sub != nil {
			return sub.Execute(args[1:])
		}
		if len(c.Subcommands) > 0 && c.Run == nil {
			return c.unknownCommand(args[0])
		}
	}

	if c.Run == nil {
		c.PrintHelp(c.helpOutput())
		if len(c.Subcommands) == 0 {
			return fmt.Errorf("%s: nothing to run", c.fullName())
		}
		if len(args) > 0 {
			return fmt.Errorf("%w before flag %q", ErrSubcommandRequired, args[0])
		}
		return ErrSubcommandRequired
	}

	positional, err := c.parseFlags(args)
	if err != nil {
		return err
	}
	return c.Run(positional)
}

// subcommand returns the child named name, linked back to c so help
// and error text can show the full command path.
func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			sub.parent = c
			return sub
		}
	}
	return nil
}

func (c *Command) unknownCommand(name string) error {
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return fmt.Errorf("%s has no command %q; did you mean %q?\n\n%s",
			c.fullName(), name, suggestion, c.helpHint())
	}
	return fmt.Errorf("%s has no command %q\n\n%s", c.fullName(), name, c.helpHint())
}

// parseFlags parses args against c.Flags and returns what is left.
// pflag's own usage printing is silenced; errors carry a hint to
// --help and, for a misspelled flag, the closest real one.
func (c *Command) parseFlags(args []string) ([]string, error) {
	if c.Flags == nil {
		return args, nil
	}
	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		if strings.Contains(err.Error(), "unknown") {
			if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
				return nil, fmt.Errorf("%v; did you mean %s?\n\n%s", err, suggestion, c.helpHint())
			}
		}
		return nil, fmt.Errorf("%v\n\n%s", err, c.helpHint())
	}
	return flagSet.Args(), nil
}

// PrintHelp renders the description, usage line, child commands,
// flags, and examples of c to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	if about := c.Description; about != "" {
		fmt.Fprintf(w, "%s\n\n", about)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	usage := c.Usage
	if usage == "" {
		usage = name + " [flags]"
		if len(c.Subcommands) > 0 {
			usage = name + " <command> [flags]"
		}
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", usage)

	if len(c.Subcommands) > 0 {
		fmt.Fprint(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if c.Flags != nil {
		if defaults := c.Flags().FlagUsages(); defaults != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", defaults)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprint(w, "\nExamples:\n")
		for index, example := range c.Examples {
			if index > 0 {
				fmt.Fprintln(w)
			}
			if example.Description != "" {
				fmt.Fprintf(w, "  %s:\n", example.Description)
			}
			fmt.Fprintf(w, "    $ %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nUse \"%s <command> --help\" for a command's flags and examples.\n", name)
	}
}

// fullName is the path typed to reach c, e.g. "megu extension show".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func (c *Command) helpHint() string {
	return fmt.Sprintf("See '%s --help'.", c.fullName())
}

func (c *Command) helpOutput() io.Writer {
	for command := c; command != nil; command = command.parent {
		if command.HelpOutput != nil {
			return command.HelpOutput
		}
	}
	return os.Stderr
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}

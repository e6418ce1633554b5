// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger returns the logger for a CLI invocation writing to
// w: text when w is a terminal, JSON otherwise so build tooling can
// parse it. Commands scope it further with With("command", ...).
func NewCommandLogger(w io.Writer, level slog.Level) *slog.Logger {
	file, ok := w.(*os.File)
	return newLogger(w, ok && IsTerminal(file), level)
}

func newLogger(w io.Writer, terminal bool, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// IsTerminal reports whether file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package interpret

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/megu-datapacks/megu/lib/script"
)

var (
	// ErrNotExist means the script path does not exist.
	ErrNotExist = errors.New("does not exist")

	// ErrNotAFile means the script path is a directory or other
	// non-regular file.
	ErrNotAFile = errors.New("is not a file")
)

// Error reports a script file that could not be interpreted. Err is
// ErrNotExist, ErrNotAFile, or a *script.ReadError.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	var readError *script.ReadError
	if errors.As(e.Err, &readError) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%q %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Interpreter reads script files and combines them. The zero value
// interprets files without extension support: any script with an
// extend reference fails with extension.ErrNotFound.
type Interpreter struct {
	Resolver script.Resolver

	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// InterpretFile reads, validates, and compiles the script at path.
// The result has its inheritance chain merged and Extend cleared;
// removals are left for Combine so a removal can also target pools
// defined by other scripts.
func (i *Interpreter) InterpretFile(ctx context.Context, path string) (*script.Script, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Path: path, Err: ErrNotExist}
		}
		return nil, &Error{Path: path, Err: &script.ReadError{Source: path, Err: err}}
	}
	if !info.Mode().IsRegular() {
		return nil, &Error{Path: path, Err: ErrNotAFile}
	}

	decoded, err := script.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	compiled, err := decoded.Compile(ctx, i.Resolver)
	if err != nil {
		return nil, &Error{Path: path, Err: &script.ReadError{Source: path, Err: err}}
	}

	i.logger().Debug("interpreted script",
		"path", path,
		"pools", len(compiled.Pools),
		"removals", len(compiled.Remove),
		"extended", decoded.Extend != nil,
	)
	return compiled, nil
}

// Combine merges scripts in order (later wins) and applies removals
// once at the end. See script.Combine.
func (i *Interpreter) Combine(ctx context.Context, scripts []*script.Script) (*script.Script, error) {
	combined, err := script.Combine(ctx, i.Resolver, scripts)
	if err != nil {
		return nil, err
	}
	i.logger().Debug("combined scripts",
		"scripts", len(scripts),
		"pools", len(combined.Pools),
		"removals", len(combined.Remove),
	)
	return combined, nil
}

// CombineFiles interprets each path in order and combines the results.
// The first failing file aborts.
func (i *Interpreter) CombineFiles(ctx context.Context, paths []string) (*script.Script, error) {
	scripts := make([]*script.Script, 0, len(paths))
	for _, path := range paths {
		compiled, err := i.InterpretFile(ctx, path)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, compiled)
	}
	return i.Combine(ctx, scripts)
}

func (i *Interpreter) logger() *slog.Logger {
	if i.Logger != nil {
		return i.Logger
	}
	return slog.Default()
}

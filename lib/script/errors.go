// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"errors"
	"fmt"
)

// ErrSyntax marks a script whose bytes are not a well-formed script
// document (malformed JSONC, or a field of the wrong JSON type).
var ErrSyntax = errors.New("invalid script syntax")

// FormatError reports the first invalid element of a decoded script.
// Field is the JSON path of the element ("extend", `pools["a:b"]`,
// "remove[2]"). Err is a *namespace.DecodeError, a *drop.PathError, or
// a *extension.Error.
type FormatError struct {
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ReadError reports a script that could not be read or decoded.
// Source is the file path or store origin. Err is an I/O error, an
// error wrapping ErrSyntax, or a *FormatError.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// CombineError reports which script in a combination failed to
// compile. Index is the position in the input sequence.
type CombineError struct {
	Index  int
	Source string
	Err    error
}

func (e *CombineError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("script %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("script %d (%s): %v", e.Index, e.Source, e.Err)
}

func (e *CombineError) Unwrap() error { return e.Err }

// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultPrefix is the prefix assigned to identifiers written without
// a colon.
const DefaultPrefix = "minecraft"

var (
	// ErrInvalidNamespace means the identifier contains a character
	// outside a-z, 0-9, and the symbols : / _ -, or is empty.
	ErrInvalidNamespace = errors.New("invalid namespace")

	// ErrTooManyColons means the identifier contains more than one colon.
	ErrTooManyColons = errors.New("too many colons")
)

// DecodeError reports an identifier that could not be decoded. Err is
// one of ErrInvalidNamespace or ErrTooManyColons.
type DecodeError struct {
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// allowedChars is the set of characters permitted anywhere in an
// identifier, including the separating colon.
var allowedChars [256]bool

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		allowedChars[c] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		allowedChars[c] = true
	}
	allowedChars[':'] = true
	allowedChars['/'] = true
	allowedChars['_'] = true
	allowedChars['-'] = true
}

// Namespace is a "prefix:suffix" identifier used for drop types, pool
// keys, and extension targets. It is comparable and safe to use as a
// map key.
type Namespace struct {
	prefix string
	suffix string
}

// New builds a Namespace from parts without validating them. Use it
// only to recombine parts that came out of Decode or are compile-time
// constants.
func New(prefix, suffix string) Namespace {
	return Namespace{prefix: prefix, suffix: suffix}
}

// Decode parses value into a Namespace. A value without a colon gets
// DefaultPrefix:
//
//	Decode("boomber:hello_world") → {boomber, hello_world}
//	Decode("entities/creeper")    → {minecraft, entities/creeper}
func Decode(value string) (Namespace, error) {
	if value == "" {
		return Namespace{}, &DecodeError{Value: value, Err: ErrInvalidNamespace}
	}
	colons := 0
	for i := 0; i < len(value); i++ {
		if !allowedChars[value[i]] {
			return Namespace{}, &DecodeError{Value: value, Err: ErrInvalidNamespace}
		}
		if value[i] == ':' {
			colons++
		}
	}

	switch colons {
	case 0:
		return Namespace{prefix: DefaultPrefix, suffix: value}, nil
	case 1:
		prefix, suffix, _ := strings.Cut(value, ":")
		return Namespace{prefix: prefix, suffix: suffix}, nil
	default:
		return Namespace{}, &DecodeError{Value: value, Err: ErrTooManyColons}
	}
}

// MustDecode is Decode for identifiers known to be valid at compile
// time. It panics on error.
func MustDecode(value string) Namespace {
	namespace, err := Decode(value)
	if err != nil {
		panic(err)
	}
	return namespace
}

// Prefix returns the part before the colon.
func (n Namespace) Prefix() string { return n.prefix }

// Suffix returns the part after the colon.
func (n Namespace) Suffix() string { return n.suffix }

// String returns the canonical "prefix:suffix" form. Decode(n.String())
// returns n for every decoded Namespace.
func (n Namespace) String() string { return n.prefix + ":" + n.suffix }

// IsZero reports whether both parts are empty. Decode(":") is valid
// and equals the zero value.
func (n Namespace) IsZero() bool { return n.prefix == "" && n.suffix == "" }

// Compare orders namespaces by their canonical string form.
func Compare(a, b Namespace) int {
	return strings.Compare(a.String(), b.String())
}

// MarshalText implements encoding.TextMarshaler. Every Namespace,
// including the zero value, encodes to a form UnmarshalText accepts.
func (n Namespace) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Decode.
func (n *Namespace) UnmarshalText(data []byte) error {
	parsed, err := Decode(string(data))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

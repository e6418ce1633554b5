// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package drop

import (
	"errors"
	"fmt"

	"github.com/megu-datapacks/megu/lib/namespace"
)

// Type is the closed set of drop node kinds.
type Type uint8

const (
	TypeItem Type = iota
	TypeTag
	TypeLootTable
	TypeGroup
	TypeAlternatives
	TypeSequence
	TypeDynamic
	TypeEmpty
)

// typeSuffixes maps each Type to its suffix under the minecraft prefix.
var typeSuffixes = [...]string{
	TypeItem:         "item",
	TypeTag:          "tag",
	TypeLootTable:    "loot_table",
	TypeGroup:        "group",
	TypeAlternatives: "alternatives",
	TypeSequence:     "sequence",
	TypeDynamic:      "dynamic",
	TypeEmpty:        "empty",
}

// suffixTypes is the inverse of typeSuffixes.
var suffixTypes = map[string]Type{
	"item":         TypeItem,
	"tag":          TypeTag,
	"loot_table":   TypeLootTable,
	"group":        TypeGroup,
	"alternatives": TypeAlternatives,
	"sequence":     TypeSequence,
	"dynamic":      TypeDynamic,
	"empty":        TypeEmpty,
}

// unsafeTypes marks the kinds an author must acknowledge with
// "unsafe": true. These are exactly the kinds that hold children.
var unsafeTypes = [...]bool{
	TypeGroup:        true,
	TypeAlternatives: true,
	TypeSequence:     true,
}

var (
	// ErrInvalidType means the identifier is not one of the known
	// minecraft drop types.
	ErrInvalidType = errors.New("invalid drop type")

	// ErrNotAllow means the declared "unsafe" flag does not match the
	// type's classification, in either direction.
	ErrNotAllow = errors.New("unsafe flag does not match drop type")

	// ErrNameWithChildren means a node declares both "name" and
	// "children".
	ErrNameWithChildren = errors.New("drop declares both name and children")

	// ErrChildrenNotAllowed means a non-composite type declares
	// "children".
	ErrChildrenNotAllowed = errors.New("drop type cannot have children")
)

// TypeError reports a drop node that failed validation. Value is the
// declared "type" string. Err is one of the sentinels above or a
// *namespace.DecodeError.
type TypeError struct {
	Value string
	Err   error
}

func (e *TypeError) Error() string {
	var decodeError *namespace.DecodeError
	if errors.As(e.Err, &decodeError) {
		return fmt.Sprintf("drop type: %v", e.Err)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Value)
}

func (e *TypeError) Unwrap() error { return e.Err }

// ResolveType decodes value and maps it to a Type. Only the minecraft
// prefix is recognized; "item" and "minecraft:item" are equivalent.
func ResolveType(value string) (Type, error) {
	id, err := namespace.Decode(value)
	if err != nil {
		return 0, &TypeError{Value: value, Err: err}
	}
	if id.Prefix() != namespace.DefaultPrefix {
		return 0, &TypeError{Value: value, Err: ErrInvalidType}
	}
	kind, ok := suffixTypes[id.Suffix()]
	if !ok {
		return 0, &TypeError{Value: value, Err: ErrInvalidType}
	}
	return kind, nil
}

// IsUnsafe reports whether kind requires an explicit "unsafe": true.
func IsUnsafe(kind Type) bool {
	return int(kind) < len(unsafeTypes) && unsafeTypes[kind]
}

// IsComposite reports whether kind may carry children.
func IsComposite(kind Type) bool {
	return IsUnsafe(kind)
}

// Namespace returns the canonical identifier for kind.
func (kind Type) Namespace() namespace.Namespace {
	return namespace.New(namespace.DefaultPrefix, kind.suffix())
}

// String returns the canonical "minecraft:<suffix>" form.
func (kind Type) String() string {
	if int(kind) >= len(typeSuffixes) {
		return fmt.Sprintf("drop.Type(%d)", uint8(kind))
	}
	return kind.Namespace().String()
}

func (kind Type) suffix() string {
	return typeSuffixes[kind]
}

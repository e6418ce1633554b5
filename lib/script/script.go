// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/megu-datapacks/megu/lib/drop"
	"github.com/megu-datapacks/megu/lib/extension"
	"github.com/megu-datapacks/megu/lib/namespace"
)

// Format is the on-disk shape of a loot table script. Extend is nil
// only when the key is absent (or null); any present string, including
// "", is decoded and must be a valid identifier.
type Format struct {
	Type   string                 `json:"type,omitempty"`
	Extend *string                `json:"extend,omitempty"`
	Pools  map[string]drop.Format `json:"pools,omitempty"`
	Remove []string               `json:"remove,omitempty"`
}

// Script is a validated loot table script.
//
// A decoded Script may carry an Extend reference. Compile consumes it
// and returns a new Script with the inherited pools merged in and
// Extend cleared. ApplyRemovals then deletes the pools named in
// Remove.
type Script struct {
	// Type is the optional script type tag.
	Type string

	// Extend names the base script this one inherits from. Nil when
	// the script has no base or has been compiled.
	Extend *namespace.Namespace

	Pools map[namespace.Namespace]drop.Node

	// Remove lists pool keys to delete after inheritance and merging.
	// Duplicates are harmless.
	Remove []namespace.Namespace

	// Source is where the script was read from (file path or store
	// origin). Empty for scripts built in memory.
	Source string
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Format. Malformed input returns an
// error wrapping ErrSyntax.
func Parse(data []byte) (*Format, error) {
	stripped := jsonc.ToJSON(data)

	var format Format
	if err := json.Unmarshal(stripped, &format); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return &format, nil
}

// Decode validates format into a Script. The extend reference is
// checked for syntax only; it is resolved by Compile. The first
// invalid element aborts decoding and is returned as a *FormatError.
// Pool keys are validated in sorted order so the reported element is
// deterministic.
func Decode(format *Format) (*Script, error) {
	script := &Script{
		Type:  format.Type,
		Pools: make(map[namespace.Namespace]drop.Node, len(format.Pools)),
	}

	if format.Extend != nil {
		id, err := namespace.Decode(*format.Extend)
		if err != nil {
			return nil, &FormatError{Field: "extend", Err: &extension.Error{ID: *format.Extend, Err: err}}
		}
		script.Extend = &id
	}

	for _, key := range slices.Sorted(maps.Keys(format.Pools)) {
		field := "pools[" + strconv.Quote(key) + "]"
		id, err := namespace.Decode(key)
		if err != nil {
			return nil, &FormatError{Field: field, Err: err}
		}
		node, err := drop.Build(format.Pools[key])
		if err != nil {
			return nil, &FormatError{Field: field, Err: err}
		}
		script.Pools[id] = node
	}

	if len(format.Remove) > 0 {
		script.Remove = make([]namespace.Namespace, 0, len(format.Remove))
		for index, value := range format.Remove {
			id, err := namespace.Decode(value)
			if err != nil {
				return nil, &FormatError{Field: fmt.Sprintf("remove[%d]", index), Err: err}
			}
			script.Remove = append(script.Remove, id)
		}
	}

	return script, nil
}

// Load parses and decodes data. source labels the result and any
// error; failures are returned as a *ReadError.
func Load(source string, data []byte) (*Script, error) {
	format, err := Parse(data)
	if err != nil {
		return nil, &ReadError{Source: source, Err: err}
	}
	script, err := Decode(format)
	if err != nil {
		return nil, &ReadError{Source: source, Err: err}
	}
	script.Source = source
	return script, nil
}

// ReadFile reads and decodes the script at path. Failures are
// returned as a *ReadError.
func ReadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Source: path, Err: err}
	}
	return Load(path, data)
}

// Encode converts the script back to its on-disk shape.
func (s *Script) Encode() *Format {
	format := &Format{Type: s.Type}
	if s.Extend != nil {
		extend := s.Extend.String()
		format.Extend = &extend
	}
	if len(s.Pools) > 0 {
		format.Pools = make(map[string]drop.Format, len(s.Pools))
		for id, node := range s.Pools {
			format.Pools[id.String()] = node.Format()
		}
	}
	for _, id := range s.Remove {
		format.Remove = append(format.Remove, id.String())
	}
	return format
}

// PoolKeys returns the pool keys in sorted order.
func (s *Script) PoolKeys() []namespace.Namespace {
	return slices.SortedFunc(maps.Keys(s.Pools), namespace.Compare)
}

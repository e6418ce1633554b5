// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package extension

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tidwall/jsonc"

	"github.com/megu-datapacks/megu/lib/namespace"
)

//go:embed vanilla.jsonc
var vanillaRegistry []byte

// RegistryStore is a Store backed by a single keyed registry document:
// a JSONC object mapping identifiers to base script definitions. The
// document is decoded on every lookup.
type RegistryStore struct {
	// Name prefixes Source.Origin ("embedded", "registry", ...).
	Name string
	Data []byte
}

// Embedded returns the registry of vanilla loot tables compiled into
// the binary.
func Embedded() RegistryStore {
	return RegistryStore{Name: "embedded", Data: vanillaRegistry}
}

// Lookup implements Store.
func (s RegistryStore) Lookup(ctx context.Context, id namespace.Namespace) (Source, error) {
	entries, err := s.entries()
	if err != nil {
		return Source{}, err
	}
	data, ok := entries[id]
	if !ok {
		return Source{}, &Error{ID: id.String(), Err: ErrNotFound}
	}
	return Source{Origin: s.Name + ":" + id.String(), Data: data}, nil
}

// IDs returns every identifier in the registry in sorted order.
func (s RegistryStore) IDs() ([]namespace.Namespace, error) {
	entries, err := s.entries()
	if err != nil {
		return nil, err
	}
	ids := make([]namespace.Namespace, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, namespace.Compare)
	return ids, nil
}

func (s RegistryStore) entries() (map[namespace.Namespace]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(s.Data), &raw); err != nil {
		return nil, fmt.Errorf("parsing %s registry: %w", s.Name, err)
	}
	entries := make(map[namespace.Namespace]json.RawMessage, len(raw))
	for key, value := range raw {
		id, err := namespace.Decode(key)
		if err != nil {
			return nil, fmt.Errorf("%s registry key: %w", s.Name, err)
		}
		entries[id] = value
	}
	return entries, nil
}

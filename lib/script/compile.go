// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/megu-datapacks/megu/lib/drop"
	"github.com/megu-datapacks/megu/lib/extension"
	"github.com/megu-datapacks/megu/lib/namespace"
)

// Resolver returns the decoded, uncompiled base script for an extend
// identifier. A missing base returns an error satisfying
// errors.Is(err, extension.ErrNotFound).
type Resolver interface {
	Resolve(ctx context.Context, id namespace.Namespace) (*Script, error)
}

// StoreResolver resolves extend identifiers by looking up their source
// in an extension.Store and decoding it with Load. Nothing is cached.
type StoreResolver struct {
	Store extension.Store

	// Logger receives a debug record per resolution. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Resolve implements Resolver.
func (r StoreResolver) Resolve(ctx context.Context, id namespace.Namespace) (*Script, error) {
	source, err := r.Store.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("resolved extension", "id", id.String(), "origin", source.Origin)

	base, err := Load(source.Origin, source.Data)
	if err != nil {
		return nil, fmt.Errorf("extension %s: %w", id, err)
	}
	return base, nil
}

func (r StoreResolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Compile resolves the script's inheritance chain and returns a new
// Script with every ancestor merged in, root first, so that on a pool
// key collision the most derived definition wins. Remove lists are
// concatenated root first. The returned Script has no Extend and
// removals have not been applied. s is not modified.
//
// A chain that revisits an identifier fails with extension.ErrCycle.
// Failures are returned as a *FormatError on the "extend" field.
func (s *Script) Compile(ctx context.Context, resolver Resolver) (*Script, error) {
	chain := []*Script{s}
	visited := make(map[namespace.Namespace]bool)

	for current := s; current.Extend != nil; {
		id := *current.Extend
		if visited[id] {
			return nil, &FormatError{Field: "extend", Err: &extension.Error{ID: id.String(), Err: extension.ErrCycle}}
		}
		visited[id] = true

		if resolver == nil {
			return nil, &FormatError{Field: "extend", Err: &extension.Error{ID: id.String(), Err: extension.ErrNotFound}}
		}
		base, err := resolver.Resolve(ctx, id)
		if err != nil {
			return nil, &FormatError{Field: "extend", Err: err}
		}
		chain = append(chain, base)
		current = base
	}

	result := &Script{
		Pools:  make(map[namespace.Namespace]drop.Node),
		Source: s.Source,
	}
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].MergeInto(result)
	}
	return result, nil
}

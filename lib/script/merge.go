// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"context"

	"github.com/megu-datapacks/megu/lib/drop"
	"github.com/megu-datapacks/megu/lib/namespace"
)

// MergeInto merges s on top of other, modifying other:
//   - every pool of s is inserted, replacing other's pool on collision
//   - s.Remove is appended after other.Remove
//   - s.Type replaces other.Type when non-empty
//
// s is never modified. Extend is left untouched on both sides.
func (s *Script) MergeInto(other *Script) {
	if other.Pools == nil {
		other.Pools = make(map[namespace.Namespace]drop.Node, len(s.Pools))
	}
	for id, node := range s.Pools {
		other.Pools[id] = node
	}
	other.Remove = append(other.Remove, s.Remove...)
	if s.Type != "" {
		other.Type = s.Type
	}
}

// ApplyRemovals deletes every pool named in s.Remove and returns how
// many pools were deleted. Names with no matching pool are ignored, so
// applying removals again is a no-op.
func (s *Script) ApplyRemovals() int {
	removed := 0
	for _, id := range s.Remove {
		if _, ok := s.Pools[id]; ok {
			delete(s.Pools, id)
			removed++
		}
	}
	return removed
}

// Combine compiles each script independently and merges the results
// in order into a single Script, so later scripts override earlier
// ones on pool key collisions. Removals are applied once, after the
// last merge, which lets a later script remove pools an earlier one
// defined. The inputs are not modified.
//
// The first failure aborts the combination and is returned as a
// *CombineError.
func Combine(ctx context.Context, resolver Resolver, scripts []*Script) (*Script, error) {
	result := &Script{Pools: make(map[namespace.Namespace]drop.Node)}
	for index, script := range scripts {
		compiled, err := script.Compile(ctx, resolver)
		if err != nil {
			return nil, &CombineError{Index: index, Source: script.Source, Err: err}
		}
		compiled.MergeInto(result)
	}
	result.ApplyRemovals()
	return result, nil
}

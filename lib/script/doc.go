// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package script implements the loot table script model and its
// composition pipeline.
//
// Scripts are authored as JSONC (JSON with comments and trailing
// commas):
//
//	{
//	  "type": "minecraft:entity",            // optional tag
//	  "extend": "minecraft:entities/creeper", // optional base
//	  "pools": { "minecraft:a": { "type": "minecraft:item", "name": "minecraft:emerald" } },
//	  "remove": ["minecraft:c"]
//	}
//
// The pipeline has three stages, each producing a new snapshot:
//
//  1. [Load] / [Decode]: bytes → [Script] with every namespace and drop
//     tree validated. Fail-fast.
//  2. [Script.Compile]: walk the extend chain through a [Resolver] and
//     merge root → leaf. The most derived pool wins on collision; remove
//     lists concatenate root first.
//  3. [Script.ApplyRemovals]: delete listed pools; absent keys are
//     ignored.
//
// [Script.MergeInto] is the single merge primitive behind both
// inheritance and [Combine], which compiles several scripts and merges
// them in caller order (last wins) before applying removals once.
//
// Errors nest from the outside in: [CombineError] → [FormatError] or
// [ReadError] → *extension.Error, *drop.PathError, or
// *namespace.DecodeError. Every layer unwraps, so errors.Is against
// the sentinels of the lower packages works at any level.
package script

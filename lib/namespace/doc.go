// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package namespace parses and validates "prefix:suffix" identifiers.
//
// Identifiers are restricted to a-z, 0-9, and the symbols : / _ -,
// with at most one colon. An identifier without a colon belongs to the
// "minecraft" prefix, so "entities/creeper" and
// "minecraft:entities/creeper" decode to the same [Namespace].
//
// [Decode] is the only validated constructor. [New] skips validation
// and exists for recombining parts that were already validated.
//
// This package has no Megu-internal dependencies.
package namespace

// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the megu command tree.
//
// Every command shares the --config and --log-level flags. Results go
// to stdout; logs and rendered errors go to stderr.
package commands

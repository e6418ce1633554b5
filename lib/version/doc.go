// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the megu binary.
//
// Three variables are injected at build time via -ldflags -X:
// [GitCommit], [BuildTime], and [Version]. They keep their
// development defaults in test runs and plain go build output.
//
//	go build -ldflags "-X github.com/megu-datapacks/megu/lib/version.GitCommit=$(git rev-parse --short HEAD)"
package version

// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the megu.yaml tool configuration.
//
// The file is named by the --config flag (via [LoadFile]) or the
// MEGU_CONFIG environment variable (via [Load]). There is no search
// path: with neither set, [Load] returns [Default].
//
// Extension roots support ${VAR} and ${VAR:-default} expansion, with
// ${HOME} and ${CONFIG_DIR} (the directory holding the loaded file)
// always defined. Relative roots are resolved against the config
// file's directory.
package config

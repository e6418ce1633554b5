// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package packmeta

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
)

// ScriptExtensions are the file name suffixes that mark a loot table
// script. ".json.merge" is a double extension and is matched as a
// suffix of the whole base name.
var ScriptExtensions = []string{".megu", ".ult", ".json.merge"}

var (
	// ErrNotExist means the meta path does not exist.
	ErrNotExist = errors.New("does not exist")

	// ErrNotAFile means the meta path is a directory.
	ErrNotAFile = errors.New("is a directory")

	// ErrSyntax means the meta file is not a JSON object of the
	// expected shape.
	ErrSyntax = errors.New("malformed pack metadata")

	// ErrNoCompilerOptions means the meta file parsed but has no
	// compiler_options field.
	ErrNoCompilerOptions = errors.New("does not have compiler_options field")
)

// MetaError reports a pack.mcmeta that failed CheckMeta.
type MetaError struct {
	Path string
	Err  error
}

func (e *MetaError) Error() string {
	if errors.Is(e.Err, ErrNotExist) || errors.Is(e.Err, ErrNotAFile) || errors.Is(e.Err, ErrNoCompilerOptions) {
		return fmt.Sprintf("%q %v", e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Path, e.Err)
}

func (e *MetaError) Unwrap() error { return e.Err }

// CompilerOption is one entry of pack.mcmeta's compiler_options list.
type CompilerOption struct {
	Name string `json:"name"`
}

type metaFormat struct {
	CompilerOptions *[]CompilerOption `json:"compiler_options"`
}

// IsLootTableScript reports whether path names a script file by its
// extension. It does not touch the filesystem.
func IsLootTableScript(path string) bool {
	base := filepath.Base(path)
	for _, extension := range ScriptExtensions {
		if len(base) > len(extension) && strings.HasSuffix(base, extension) {
			return true
		}
	}
	return false
}

// CheckMeta reads the pack.mcmeta at path and returns its compiler
// options. An explicitly empty list is accepted; a missing field is
// ErrNoCompilerOptions. Every failure is a *MetaError.
func CheckMeta(path string) ([]CompilerOption, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MetaError{Path: path, Err: ErrNotExist}
		}
		return nil, &MetaError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &MetaError{Path: path, Err: ErrNotAFile}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MetaError{Path: path, Err: err}
	}
	var meta metaFormat
	if err := json.Unmarshal(jsonc.ToJSON(data), &meta); err != nil {
		return nil, &MetaError{Path: path, Err: fmt.Errorf("%w: %w", ErrSyntax, err)}
	}
	if meta.CompilerOptions == nil {
		return nil, &MetaError{Path: path, Err: ErrNoCompilerOptions}
	}
	return *meta.CompilerOptions, nil
}

// FindScripts walks root and returns every loot table script beneath
// it in lexical path order. Hidden directories (leading dot) are
// skipped. A root that is itself a script file is returned alone.
func FindScripts(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("finding scripts: %w", err)
	}
	if !info.IsDir() {
		if IsLootTableScript(root) {
			return []string{root}, nil
		}
		return nil, fmt.Errorf("finding scripts: %s is not a loot table script", root)
	}

	var scripts []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Type().IsRegular() && IsLootTableScript(path) {
			scripts = append(scripts, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding scripts under %s: %w", root, err)
	}
	slices.Sort(scripts)
	return scripts, nil
}

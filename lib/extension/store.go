// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package extension

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/megu-datapacks/megu/lib/namespace"
)

var (
	// ErrNotFound means no store holds a definition for the identifier.
	ErrNotFound = errors.New("extension not found")

	// ErrCycle means an extend chain refers back to an identifier it
	// already visited.
	ErrCycle = errors.New("extension cycle")
)

// Error reports a failed extension lookup. ID is the identifier as the
// author wrote it.
type Error struct {
	ID  string
	Err error
}

func (e *Error) Error() string {
	var decodeError *namespace.DecodeError
	if errors.As(e.Err, &decodeError) {
		return fmt.Sprintf("extend: %v", e.Err)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.ID)
}

func (e *Error) Unwrap() error { return e.Err }

// Store looks up the raw source of a base script by identifier.
// Lookups are deterministic: the same identifier against the same
// backing data returns the same bytes. A miss returns an error
// satisfying errors.Is(err, ErrNotFound).
type Store interface {
	Lookup(ctx context.Context, id namespace.Namespace) (Source, error)
}

// Source is a base script's raw JSONC bytes plus a description of
// where they came from (a file path or "embedded:<id>") for logs and
// error messages.
type Source struct {
	Origin string
	Data   []byte
}

// DefaultFileExtensions are the file extensions DirStore tries, in
// order, when FileExtensions is empty.
var DefaultFileExtensions = []string{".megu", ".ult", ".json.merge"}

// DirStore resolves identifiers against a directory hierarchy laid out
// as {Root}/{prefix}/{suffix}{extension}. The identifier
// "minecraft:entities/creeper" maps to
// {Root}/minecraft/entities/creeper.megu when that file exists.
type DirStore struct {
	Root string

	// FileExtensions are tried in order. Empty means
	// DefaultFileExtensions.
	FileExtensions []string
}

// Lookup implements Store.
func (s DirStore) Lookup(ctx context.Context, id namespace.Namespace) (Source, error) {
	if err := ctx.Err(); err != nil {
		return Source{}, err
	}
	extensions := s.FileExtensions
	if len(extensions) == 0 {
		extensions = DefaultFileExtensions
	}
	base := filepath.Join(s.Root, id.Prefix(), filepath.FromSlash(id.Suffix()))
	for _, extension := range extensions {
		path := base + extension
		data, err := os.ReadFile(path)
		if err == nil {
			return Source{Origin: path, Data: data}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Source{}, fmt.Errorf("reading extension %s: %w", path, err)
		}
	}
	return Source{}, &Error{ID: id.String(), Err: ErrNotFound}
}

// IDs returns the identifiers of every definition under Root, sorted.
// A file whose path is not a valid identifier is skipped, as is a
// missing Root.
func (s DirStore) IDs() ([]namespace.Namespace, error) {
	extensions := s.FileExtensions
	if len(extensions) == 0 {
		extensions = DefaultFileExtensions
	}
	var ids []namespace.Namespace
	err := filepath.WalkDir(s.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == s.Root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		relative, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		prefix, rest, ok := strings.Cut(filepath.ToSlash(relative), "/")
		if !ok {
			return nil
		}
		for _, extension := range extensions {
			suffix, matched := strings.CutSuffix(rest, extension)
			if !matched || suffix == "" {
				continue
			}
			if id, err := namespace.Decode(prefix + ":" + suffix); err == nil {
				ids = append(ids, id)
			}
			break
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing extensions under %s: %w", s.Root, err)
	}
	slices.SortFunc(ids, namespace.Compare)
	return slices.Compact(ids), nil
}

// Lister is implemented by stores that can enumerate their
// identifiers.
type Lister interface {
	IDs() ([]namespace.Namespace, error)
}

// MapStore is an in-memory Store keyed by identifier. The zero value
// is an empty store.
type MapStore map[namespace.Namespace][]byte

// Lookup implements Store.
func (s MapStore) Lookup(ctx context.Context, id namespace.Namespace) (Source, error) {
	data, ok := s[id]
	if !ok {
		return Source{}, &Error{ID: id.String(), Err: ErrNotFound}
	}
	return Source{Origin: "memory:" + id.String(), Data: data}, nil
}

// IDs implements Lister.
func (s MapStore) IDs() ([]namespace.Namespace, error) {
	return slices.SortedFunc(maps.Keys(s), namespace.Compare), nil
}

// Chain tries each store in order and returns the first hit. Errors
// other than ErrNotFound stop the search.
type Chain []Store

// Lookup implements Store.
func (c Chain) Lookup(ctx context.Context, id namespace.Namespace) (Source, error) {
	for _, store := range c {
		source, err := store.Lookup(ctx, id)
		if err == nil {
			return source, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Source{}, err
		}
	}
	return Source{}, &Error{ID: id.String(), Err: ErrNotFound}
}

// IDs returns the union of the identifiers of every member store that
// implements Lister, sorted. Members that cannot list are skipped.
func (c Chain) IDs() ([]namespace.Namespace, error) {
	var ids []namespace.Namespace
	for _, store := range c {
		lister, ok := store.(Lister)
		if !ok {
			continue
		}
		found, err := lister.IDs()
		if err != nil {
			return nil, err
		}
		ids = append(ids, found...)
	}
	slices.SortFunc(ids, namespace.Compare)
	return slices.Compact(ids), nil
}

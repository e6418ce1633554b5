// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/megu-datapacks/megu/lib/drop"
	"github.com/megu-datapacks/megu/lib/extension"
	"github.com/megu-datapacks/megu/lib/namespace"
)

func mustLoad(t *testing.T, source, data string) *Script {
	t.Helper()
	script, err := Load(source, []byte(data))
	if err != nil {
		t.Fatalf("Load(%s): %v", source, err)
	}
	return script
}

func item(name string) drop.Node {
	return drop.Node{Kind: drop.TypeItem, Name: name}
}

func ns(value string) namespace.Namespace {
	return namespace.MustDecode(value)
}

func TestLoadScript(t *testing.T) {
	t.Parallel()

	script := mustLoad(t, "test.megu", `{
		// Creeper drops with an emerald bonus.
		"type": "minecraft:entity",
		"extend": "entities/creeper",
		"pools": {
			"a": {"type": "minecraft:item", "name": "minecraft:emerald"},
			"boomber:bonus": {
				"unsafe": true,
				"type": "minecraft:group",
				"children": [{"type": "minecraft:empty"}],
			},
		},
		"remove": ["minecraft:c", "c"],
	}`)

	if script.Type != "minecraft:entity" {
		t.Errorf("Type = %q, want minecraft:entity", script.Type)
	}
	if script.Extend == nil || *script.Extend != ns("minecraft:entities/creeper") {
		t.Errorf("Extend = %v, want minecraft:entities/creeper", script.Extend)
	}
	if script.Source != "test.megu" {
		t.Errorf("Source = %q, want test.megu", script.Source)
	}
	wantPools := map[namespace.Namespace]drop.Node{
		ns("minecraft:a"): item("minecraft:emerald"),
		ns("boomber:bonus"): {
			Kind:     drop.TypeGroup,
			Unsafe:   true,
			Children: []drop.Node{{Kind: drop.TypeEmpty}},
		},
	}
	if diff := cmp.Diff(wantPools, script.Pools, cmp.Comparer(func(a, b namespace.Namespace) bool { return a == b })); diff != "" {
		t.Errorf("Pools mismatch (-want +got):\n%s", diff)
	}
	wantRemove := []namespace.Namespace{ns("minecraft:c"), ns("minecraft:c")}
	if len(script.Remove) != 2 || script.Remove[0] != wantRemove[0] || script.Remove[1] != wantRemove[1] {
		t.Errorf("Remove = %v, want %v", script.Remove, wantRemove)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      string
		wantErr   error
		wantField string
	}{
		{name: "malformed", data: `{"pools": `, wantErr: ErrSyntax},
		{name: "wrong-json-type", data: `{"pools": []}`, wantErr: ErrSyntax},
		{name: "bad-extend", data: `{"extend": "a:b:c"}`, wantErr: namespace.ErrTooManyColons, wantField: "extend"},
		{name: "empty-extend", data: `{"extend": "", "pools": {"a": {"type": "empty"}}}`, wantErr: namespace.ErrInvalidNamespace, wantField: "extend"},
		{name: "bad-pool-key", data: `{"pools": {"Bad": {"type": "item"}}}`, wantErr: namespace.ErrInvalidNamespace, wantField: `pools["Bad"]`},
		{name: "bad-drop-type", data: `{"pools": {"a": {"type": "minecraft:bogus"}}}`, wantErr: drop.ErrInvalidType, wantField: `pools["a"]`},
		{name: "unsafe-not-declared", data: `{"pools": {"a": {"type": "minecraft:group"}}}`, wantErr: drop.ErrNotAllow, wantField: `pools["a"]`},
		{name: "bad-remove", data: `{"remove": ["a", "b:c:d"]}`, wantErr: namespace.ErrTooManyColons, wantField: "remove[1]"},
		{
			name:      "first-sorted-key-reported",
			data:      `{"pools": {"z": {"type": "bogus"}, "b": {"type": "minecraft:item", "unsafe": true}}}`,
			wantErr:   drop.ErrNotAllow,
			wantField: `pools["b"]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			script, err := Load("bad.megu", []byte(tt.data))
			if script != nil {
				t.Errorf("Load returned a script alongside error %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load error = %v, want %v", err, tt.wantErr)
			}
			var readError *ReadError
			if !errors.As(err, &readError) || readError.Source != "bad.megu" {
				t.Fatalf("error = %v, want *ReadError for bad.megu", err)
			}
			if tt.wantField == "" {
				return
			}
			var formatError *FormatError
			if !errors.As(err, &formatError) {
				t.Fatalf("error = %v, want *FormatError", err)
			}
			if formatError.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", formatError.Field, tt.wantField)
			}
		})
	}
}

func TestBadExtendIsExtensionError(t *testing.T) {
	t.Parallel()

	_, err := Load("x", []byte(`{"extend": "Not Valid"}`))
	var extensionError *extension.Error
	if !errors.As(err, &extensionError) {
		t.Fatalf("error = %v, want *extension.Error", err)
	}
	if extensionError.ID != "Not Valid" {
		t.Errorf("ID = %q, want %q", extensionError.ID, "Not Valid")
	}
}

func TestNullExtendIsAbsent(t *testing.T) {
	t.Parallel()

	script := mustLoad(t, "x", `{"extend": null, "pools": {"a": {"type": "empty"}}}`)
	if script.Extend != nil {
		t.Errorf("Extend = %v, want nil for a null extend", script.Extend)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "loot.megu")
	if err := os.WriteFile(path, []byte(`{"pools": {"a": {"type": "item", "name": "minecraft:stick"}}}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	script, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if script.Source != path {
		t.Errorf("Source = %q, want %q", script.Source, path)
	}
	if got := script.Pools[ns("a")]; got.Name != "minecraft:stick" {
		t.Errorf("pool a = %+v", got)
	}

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.megu"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	original := mustLoad(t, "x", `{
		"type": "minecraft:chest",
		"extend": "chests/simple_dungeon",
		"pools": {
			"a": {"type": "item", "name": "minecraft:apple", "functions": [{"function": "minecraft:set_count", "count": 3}]},
			"b": {"unsafe": true, "type": "sequence", "children": [{"type": "tag", "name": "minecraft:wool"}]}
		},
		"remove": ["c"]
	}`)

	again, err := Decode(original.Encode())
	if err != nil {
		t.Fatalf("Decode(Encode()): %v", err)
	}
	again.Source = original.Source
	if diff := cmp.Diff(original, again, cmp.Comparer(func(a, b namespace.Namespace) bool { return a == b })); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyPartsPoolKeyEncodes(t *testing.T) {
	t.Parallel()

	script := mustLoad(t, "x", `{"pools": {":": {"type": "empty"}}}`)
	encoded := script.Encode()
	if _, ok := encoded.Pools[":"]; !ok {
		t.Fatalf("Encode().Pools = %v, want key \":\"", encoded.Pools)
	}
	if _, err := json.Marshal(script.PoolKeys()); err != nil {
		t.Errorf("json.Marshal(PoolKeys()): %v", err)
	}
}

func TestPoolKeys(t *testing.T) {
	t.Parallel()

	script := mustLoad(t, "x", `{"pools": {"z": {"type": "empty"}, "boomber:a": {"type": "empty"}, "b": {"type": "empty"}}}`)
	got := script.PoolKeys()
	want := []string{"boomber:a", "minecraft:b", "minecraft:z"}
	if len(got) != len(want) {
		t.Fatalf("PoolKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("PoolKeys()[%d] = %v, want %s", i, got[i], want[i])
		}
	}
}

func TestStoreResolver(t *testing.T) {
	t.Parallel()

	store := extension.MapStore{
		ns("entities/creeper"): []byte(`{"pools": {"a": {"type": "item", "name": "minecraft:gunpowder"}}}`),
		ns("entities/broken"):  []byte(`{"pools": {"a": {"type": "bogus"}}}`),
	}
	resolver := StoreResolver{Store: store}
	ctx := context.Background()

	base, err := resolver.Resolve(ctx, ns("minecraft:entities/creeper"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if base.Source != "memory:minecraft:entities/creeper" {
		t.Errorf("Source = %q", base.Source)
	}
	if len(base.Pools) != 1 {
		t.Errorf("len(Pools) = %d, want 1", len(base.Pools))
	}

	if _, err := resolver.Resolve(ctx, ns("entities/missing")); !errors.Is(err, extension.ErrNotFound) {
		t.Errorf("Resolve(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := resolver.Resolve(ctx, ns("entities/broken")); !errors.Is(err, drop.ErrInvalidType) {
		t.Errorf("Resolve(broken) error = %v, want ErrInvalidType", err)
	}
}

func TestStoreResolverUncached(t *testing.T) {
	t.Parallel()

	counter := &countingStore{inner: extension.MapStore{ns("a"): []byte(`{}`)}}
	resolver := StoreResolver{Store: counter}
	for range 3 {
		if _, err := resolver.Resolve(context.Background(), ns("a")); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
	}
	if counter.lookups != 3 {
		t.Errorf("lookups = %d, want 3", counter.lookups)
	}
}

type countingStore struct {
	inner   extension.Store
	lookups int
}

func (s *countingStore) Lookup(ctx context.Context, id namespace.Namespace) (extension.Source, error) {
	s.lookups++
	return s.inner.Lookup(ctx, id)
}

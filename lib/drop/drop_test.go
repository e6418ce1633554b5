// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package drop

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/megu-datapacks/megu/lib/namespace"
)

func TestResolveType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    Type
		wantErr error
	}{
		{value: "minecraft:item", want: TypeItem},
		{value: "item", want: TypeItem},
		{value: "minecraft:tag", want: TypeTag},
		{value: "minecraft:loot_table", want: TypeLootTable},
		{value: "minecraft:group", want: TypeGroup},
		{value: "minecraft:alternatives", want: TypeAlternatives},
		{value: "minecraft:sequence", want: TypeSequence},
		{value: "minecraft:dynamic", want: TypeDynamic},
		{value: "minecraft:empty", want: TypeEmpty},
		{value: "minecraft:bogus", wantErr: ErrInvalidType},
		{value: "other:item", wantErr: ErrInvalidType},
		{value: "minecraft:Item", wantErr: namespace.ErrInvalidNamespace},
		{value: "a:b:item", wantErr: namespace.ErrTooManyColons},
		{value: "", wantErr: namespace.ErrInvalidNamespace},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveType(tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveType(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				var typeError *TypeError
				if !errors.As(err, &typeError) {
					t.Fatalf("ResolveType(%q) error type = %T, want *TypeError", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveType(%q): %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ResolveType(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	t.Parallel()

	for kind := TypeItem; kind <= TypeEmpty; kind++ {
		got, err := ResolveType(kind.String())
		if err != nil {
			t.Fatalf("ResolveType(%q): %v", kind.String(), err)
		}
		if got != kind {
			t.Errorf("ResolveType(%q) = %v, want %v", kind.String(), got, kind)
		}
	}
	if got := Type(200).String(); got != "drop.Type(200)" {
		t.Errorf("Type(200).String() = %q", got)
	}
}

func TestIsUnsafe(t *testing.T) {
	t.Parallel()

	unsafe := map[Type]bool{TypeGroup: true, TypeAlternatives: true, TypeSequence: true}
	for kind := TypeItem; kind <= TypeEmpty; kind++ {
		if IsUnsafe(kind) != unsafe[kind] {
			t.Errorf("IsUnsafe(%v) = %v, want %v", kind, IsUnsafe(kind), unsafe[kind])
		}
	}
	if IsUnsafe(Type(200)) {
		t.Error("IsUnsafe(out of range) = true")
	}
}

func parseFormat(t *testing.T, data string) Format {
	t.Helper()
	var format Format
	if err := json.Unmarshal([]byte(data), &format); err != nil {
		t.Fatalf("unmarshaling drop format: %v", err)
	}
	return format
}

func TestBuildLeaf(t *testing.T) {
	t.Parallel()

	format := parseFormat(t, `{
		"type": "minecraft:item",
		"name": "minecraft:emerald",
		"functions": [{"function": "minecraft:set_count", "count": 2}],
		"conditions": [{"condition": "minecraft:killed_by_player"}]
	}`)

	node, err := Build(format)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := Node{
		Kind:       TypeItem,
		Name:       "minecraft:emerald",
		Functions:  []any{map[string]any{"function": "minecraft:set_count", "count": float64(2)}},
		Conditions: []any{map[string]any{"condition": "minecraft:killed_by_player"}},
	}
	if diff := cmp.Diff(want, node); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSafetyGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "group-without-flag", data: `{"type": "minecraft:group"}`, wantErr: ErrNotAllow},
		{name: "group-flag-false", data: `{"type": "minecraft:group", "unsafe": false}`, wantErr: ErrNotAllow},
		{name: "group-flag-true", data: `{"type": "minecraft:group", "unsafe": true}`},
		{name: "sequence-flag-true", data: `{"type": "minecraft:sequence", "unsafe": true}`},
		{name: "alternatives-without-flag", data: `{"type": "minecraft:alternatives"}`, wantErr: ErrNotAllow},
		{name: "item-flag-true", data: `{"type": "minecraft:item", "unsafe": true}`, wantErr: ErrNotAllow},
		{name: "empty-flag-false", data: `{"type": "minecraft:empty", "unsafe": false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node, err := Build(parseFormat(t, tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Build error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if node.Unsafe != IsUnsafe(node.Kind) {
				t.Errorf("Unsafe = %v, want %v", node.Unsafe, IsUnsafe(node.Kind))
			}
		})
	}
}

func TestBuildTree(t *testing.T) {
	t.Parallel()

	format := parseFormat(t, `{
		"type": "minecraft:alternatives",
		"unsafe": true,
		"children": [
			{"type": "minecraft:item", "name": "minecraft:diamond"},
			{
				"type": "minecraft:sequence",
				"unsafe": true,
				"children": [
					{"type": "tag", "name": "minecraft:logs"},
					{"type": "minecraft:empty"}
				]
			}
		]
	}`)

	node, err := Build(format)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := Node{
		Kind:   TypeAlternatives,
		Unsafe: true,
		Children: []Node{
			{Kind: TypeItem, Name: "minecraft:diamond"},
			{
				Kind:   TypeSequence,
				Unsafe: true,
				Children: []Node{
					{Kind: TypeTag, Name: "minecraft:logs"},
					{Kind: TypeEmpty},
				},
			},
		},
	}
	if diff := cmp.Diff(want, node); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}

	rebuilt, err := Build(node.Format())
	if err != nil {
		t.Fatalf("Build(Format()): %v", err)
	}
	if diff := cmp.Diff(node, rebuilt); diff != "" {
		t.Errorf("Build(Format()) mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFailsFastWithPath(t *testing.T) {
	t.Parallel()

	format := parseFormat(t, `{
		"type": "minecraft:group",
		"unsafe": true,
		"children": [
			{"type": "minecraft:item", "name": "minecraft:stick"},
			{
				"type": "minecraft:group",
				"unsafe": true,
				"children": [
					{"type": "minecraft:bogus"},
					{"type": "minecraft:sequence"}
				]
			}
		]
	}`)

	node, err := Build(format)
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("Build error = %v, want ErrInvalidType", err)
	}
	var pathError *PathError
	if !errors.As(err, &pathError) {
		t.Fatalf("Build error type = %T, want *PathError", err)
	}
	if pathError.Path != "children[1].children[0]" {
		t.Errorf("Path = %q, want %q", pathError.Path, "children[1].children[0]")
	}
	if diff := cmp.Diff(Node{}, node); diff != "" {
		t.Errorf("Build returned a partial tree:\n%s", diff)
	}
}

func TestBuildStructuralRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "name-and-children",
			data:    `{"type": "minecraft:group", "unsafe": true, "name": "x", "children": [{"type": "minecraft:empty"}]}`,
			wantErr: ErrNameWithChildren,
		},
		{
			name:    "empty-name-and-children",
			data:    `{"type": "minecraft:sequence", "unsafe": true, "name": "", "children": [{"type": "minecraft:empty"}]}`,
			wantErr: ErrNameWithChildren,
		},
		{
			name:    "children-on-leaf",
			data:    `{"type": "minecraft:loot_table", "children": [{"type": "minecraft:empty"}]}`,
			wantErr: ErrChildrenNotAllowed,
		},
		{
			name:    "missing-type",
			data:    `{"name": "minecraft:stone"}`,
			wantErr: namespace.ErrInvalidNamespace,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Build(parseFormat(t, tt.data)); !errors.Is(err, tt.wantErr) {
				t.Errorf("Build error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTypeErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := Build(Format{Type: "minecraft:group"})
	want := `unsafe flag does not match drop type: "minecraft:group"`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}

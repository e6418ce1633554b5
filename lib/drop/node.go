// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package drop

import "fmt"

// Format is the on-disk shape of a drop node. Conditions and functions
// are opaque and carried through without interpretation. Unsafe and
// Name are pointers so a present key is told apart from an absent one.
type Format struct {
	Unsafe     *bool    `json:"unsafe,omitempty"`
	Type       string   `json:"type"`
	Name       *string  `json:"name,omitempty"`
	Children   []Format `json:"children,omitempty"`
	Functions  []any    `json:"functions,omitempty"`
	Conditions []any    `json:"conditions,omitempty"`
}

// Node is a validated drop tree node.
type Node struct {
	Kind Type

	// Name is the leaf reference (item id, tag, loot table). Empty when
	// absent. Never set together with Children.
	Name string

	// Children are present only on composite kinds.
	Children []Node

	Conditions []any
	Functions  []any

	// Unsafe always equals IsUnsafe(Kind) for a built Node.
	Unsafe bool
}

// PathError locates a failure inside a drop tree. Path is relative to
// the node passed to Build, e.g. "children[1].children[0]"; it is
// empty when the root node itself failed.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Build validates format and its descendants into a Node. The first
// invalid node anywhere in the tree aborts the build; no partial tree
// is returned. Errors are a *PathError wrapping a *TypeError.
func Build(format Format) (Node, error) {
	node, path, err := build(format, "")
	if err != nil {
		return Node{}, &PathError{Path: path, Err: err}
	}
	return node, nil
}

func build(format Format, path string) (Node, string, error) {
	kind, err := ResolveType(format.Type)
	if err != nil {
		return Node{}, path, err
	}

	declared := format.Unsafe != nil && *format.Unsafe
	if declared != IsUnsafe(kind) {
		return Node{}, path, &TypeError{Value: format.Type, Err: ErrNotAllow}
	}

	if len(format.Children) > 0 {
		if !IsComposite(kind) {
			return Node{}, path, &TypeError{Value: format.Type, Err: ErrChildrenNotAllowed}
		}
		if format.Name != nil {
			return Node{}, path, &TypeError{Value: format.Type, Err: ErrNameWithChildren}
		}
	}

	node := Node{
		Kind:       kind,
		Conditions: format.Conditions,
		Functions:  format.Functions,
		Unsafe:     declared,
	}
	if format.Name != nil {
		node.Name = *format.Name
	}
	if len(format.Children) > 0 {
		node.Children = make([]Node, 0, len(format.Children))
		for index, childFormat := range format.Children {
			childPath := fmt.Sprintf("children[%d]", index)
			if path != "" {
				childPath = path + "." + childPath
			}
			child, failedPath, err := build(childFormat, childPath)
			if err != nil {
				return Node{}, failedPath, err
			}
			node.Children = append(node.Children, child)
		}
	}
	return node, "", nil
}

// Format converts the node back to its on-disk shape. Build(n.Format())
// reproduces n.
func (n Node) Format() Format {
	format := Format{
		Type:       n.Kind.String(),
		Functions:  n.Functions,
		Conditions: n.Conditions,
	}
	if n.Name != "" {
		name := n.Name
		format.Name = &name
	}
	if n.Unsafe {
		acknowledged := true
		format.Unsafe = &acknowledged
	}
	if len(n.Children) > 0 {
		format.Children = make([]Format, len(n.Children))
		for index, child := range n.Children {
			format.Children[index] = child.Format()
		}
	}
	return format
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the design token data model: nodes, the
// tagged value union, and reference syntax.
package token

import (
	"strings"

	"bennypowers.dev/tokencraft/tokenpath"
)

// Token types recognized by the built-in transforms.
const (
	TypeColor       = "color"
	TypeDimension   = "dimension"
	TypeFontFamily  = "fontFamily"
	TypeFontWeight  = "fontWeight"
	TypeDuration    = "duration"
	TypeCubicBezier = "cubicBezier"
	TypeNumber      = "number"
	TypeString      = "string"
	TypeStrokeStyle = "strokeStyle"
	TypeBorder      = "border"
	TypeTransition  = "transition"
	TypeShadow      = "shadow"
	TypeGradient    = "gradient"
	TypeTypography  = "typography"
)

// Node is a value node found in a token tree.
type Node struct {
	// Path is the dot path to this node (e.g., "color.brand.primary").
	Path string

	// Value is the raw $value, or the node itself when $value is absent.
	Value any

	// Type is the declared $type, inherited from the closest group when absent.
	Type string

	// Description is optional documentation.
	Description string

	// Extensions holds $extensions, including per-theme overrides.
	Extensions map[string]any

	// Alias is the $alias path, without braces.
	Alias string
}

// Lookup finds the node at path in tree. The second result is false when
// no such path exists. A path naming a group yields a node whose Value is
// the group map itself.
func Lookup(tree map[string]any, path string) (*Node, bool) {
	segments := tokenpath.Split(path)
	raw, ok := tokenpath.GetSegments(tree, segments)
	if !ok {
		return nil, false
	}

	n := &Node{Path: path, Type: inheritedType(tree, segments)}

	m, isMap := raw.(map[string]any)
	if !isMap {
		n.Value = raw
		return n, true
	}

	if v, has := m["$value"]; has {
		n.Value = v
	} else {
		n.Value = m
	}
	if t, ok := m["$type"].(string); ok {
		n.Type = t
	}
	if d, ok := m["$description"].(string); ok {
		n.Description = d
	}
	if ext, ok := m["$extensions"].(map[string]any); ok {
		n.Extensions = ext
	}
	if alias, ok := m["$alias"].(string); ok {
		n.Alias = TrimBraces(alias)
	}
	return n, true
}

// inheritedType returns the $type of the closest ancestor group.
func inheritedType(tree map[string]any, segments []string) string {
	typ := ""
	if t, ok := tree["$type"].(string); ok {
		typ = t
	}
	current := tree
	for _, seg := range segments[:max(len(segments)-1, 0)] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			break
		}
		if t, ok := next["$type"].(string); ok {
			typ = t
		}
		current = next
	}
	return typ
}

// CSSVariableName returns the CSS custom property name for a dot path.
// e.g., "--color-primary" or "--my-prefix-color-primary"
func CSSVariableName(path, prefix string) string {
	name := strings.ReplaceAll(path, ".", "-")
	if name == "" {
		return ""
	}
	if prefix != "" {
		prefix = strings.ReplaceAll(prefix, ".", "-")
		return "--" + prefix + "-" + name
	}
	return "--" + name
}

// TrimBraces removes a single pair of surrounding curly braces.
func TrimBraces(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return s[1 : len(s)-1]
	}
	return s
}

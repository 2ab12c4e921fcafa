/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks token trees for structural problems that do not
// stop resolution: unknown types, unparseable colors, and conflicting root
// token patterns.
package validator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/token"
	"bennypowers.dev/tokencraft/tokenpath"
)

// KnownTypes lists the recognized $type values.
var KnownTypes = []string{
	token.TypeColor,
	token.TypeDimension,
	token.TypeFontFamily,
	token.TypeFontWeight,
	token.TypeDuration,
	token.TypeCubicBezier,
	token.TypeNumber,
	token.TypeString,
	token.TypeStrokeStyle,
	token.TypeBorder,
	token.TypeTransition,
	token.TypeShadow,
	token.TypeGradient,
	token.TypeTypography,
}

// Consistency walks tree and returns a warning for each finding. Values
// containing references are not checked; the resolver reports those.
func Consistency(tree map[string]any, pattern *token.ReferencePattern) []diagnostic.Diagnostic {
	if pattern == nil {
		pattern = token.DefaultPattern()
	}
	v := &validator{pattern: pattern}
	v.group(tree, nil, "")
	return v.ds
}

type validator struct {
	pattern *token.ReferencePattern
	ds      []diagnostic.Diagnostic
}

func (v *validator) report(code diagnostic.Code, path, msg, hint string) {
	v.ds = append(v.ds, diagnostic.New(code, path, msg).WithHint(hint).AsWarning())
}

func (v *validator) typ(node map[string]any, path, inherited string) string {
	t, ok := node["$type"].(string)
	if !ok {
		return inherited
	}
	if !slices.Contains(KnownTypes, t) {
		v.report(diagnostic.TypeMismatch, path, fmt.Sprintf("unknown $type %q", t),
			"expected one of "+strings.Join(KnownTypes, ", "))
	}
	return t
}

func (v *validator) group(node map[string]any, segments []string, inherited string) {
	path := tokenpath.Join(segments...)
	inherited = v.typ(node, path, inherited)

	hasRoot, marker := false, ""
	for _, k := range slices.Sorted(maps.Keys(node)) {
		if k == "$root" {
			hasRoot = true
		}
		if isGroupMarker(k) && marker == "" {
			marker = k
		}
		if strings.HasPrefix(k, "$") && k != "$root" {
			continue
		}
		child, ok := node[k].(map[string]any)
		if !ok {
			continue
		}
		childSegments := append(segments[:len(segments):len(segments)], k)
		if tokenpath.IsTokenNode(child) {
			v.token(child, tokenpath.Join(childSegments...), inherited)
			continue
		}
		v.group(child, childSegments, inherited)
	}

	switch {
	case hasRoot && marker != "":
		v.report(diagnostic.TypeMismatch, path,
			"conflicting root token patterns: both $root and group marker found",
			fmt.Sprintf("remove the %q token", marker))
	case marker != "":
		v.report(diagnostic.TypeMismatch, tokenpath.Join(append(segments[:len(segments):len(segments)], marker)...),
			"group marker tokens are deprecated",
			"use $root instead")
	}
}

func (v *validator) token(node map[string]any, path, inherited string) {
	typ := v.typ(node, path, inherited)
	if typ != token.TypeColor {
		return
	}
	s, ok := node["$value"].(string)
	if !ok || v.pattern.Contains(s) {
		return
	}
	if _, err := csscolorparser.Parse(s); err != nil {
		v.report(diagnostic.TypeMismatch, path, fmt.Sprintf("invalid color value %q", s),
			"use a CSS color such as #rrggbb, rgb() or a named color")
	}
}

// isGroupMarker checks if a key is a legacy group marker.
func isGroupMarker(key string) bool {
	return key == "_" || key == "-" || key == "."
}

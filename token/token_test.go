/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"testing"

	"bennypowers.dev/tokencraft/token"
)

func TestCSSVariableName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		prefix   string
		expected string
	}{
		{"simple path", "color.primary", "", "--color-primary"},
		{"with prefix", "color.primary", "rh", "--rh-color-primary"},
		{"with dotted prefix", "color.primary", "my.prefix", "--my-prefix-color-primary"},
		{"empty path", "", "rh", ""},
		{"complex path", "color.brand.primary.base", "", "--color-brand-primary-base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := token.CSSVariableName(tt.path, tt.prefix); got != tt.expected {
				t.Errorf("CSSVariableName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tree := map[string]any{
		"color": map[string]any{
			"$type": "color",
			"bg": map[string]any{
				"$value":       map[string]any{"light": "#fff", "dark": "#000"},
				"$description": "Page background",
				"$extensions":  map[string]any{"design.paths.dark": "#111"},
			},
			"surface": map[string]any{"$alias": "{color.bg}"},
		},
		"space": map[string]any{
			"sm": map[string]any{"$value": 4.0, "$type": "dimension"},
		},
	}

	bg, ok := token.Lookup(tree, "color.bg")
	if !ok {
		t.Fatal("expected to find color.bg")
	}
	if bg.Type != "color" {
		t.Errorf("bg.Type = %q, want inherited color", bg.Type)
	}
	if bg.Description != "Page background" {
		t.Errorf("bg.Description = %q", bg.Description)
	}
	if bg.Extensions["design.paths.dark"] != "#111" {
		t.Errorf("bg.Extensions = %v", bg.Extensions)
	}

	surface, ok := token.Lookup(tree, "color.surface")
	if !ok || surface.Alias != "color.bg" {
		t.Errorf("surface alias = %+v", surface)
	}

	sm, _ := token.Lookup(tree, "space.sm")
	if sm.Type != token.TypeDimension || sm.Value != 4.0 {
		t.Errorf("space.sm = %+v", sm)
	}

	if _, ok := token.Lookup(tree, "color.missing"); ok {
		t.Error("expected color.missing to be absent")
	}
}

func TestClassify(t *testing.T) {
	sel := token.Selection{Theme: "midnight", Brand: "acme"}

	tests := []struct {
		name string
		raw  any
		want token.Kind
	}{
		{"nil", nil, token.KindNull},
		{"string", "#fff", token.KindScalar},
		{"number", 16.0, token.KindScalar},
		{"int", 16, token.KindScalar},
		{"list", []any{"Inter", "sans-serif"}, token.KindList},
		{"known variants", map[string]any{"light": "#fff", "dark": "#000"}, token.KindContextMap},
		{"selection keys", map[string]any{"midnight": "#000", "acme": "#f00"}, token.KindContextMap},
		{"typography", map[string]any{"fontSize": 16.0, "fontFamily": "Inter"}, token.KindStructured},
		{"mixed keys", map[string]any{"light": "#fff", "fontSize": 16.0}, token.KindStructured},
		{"empty object", map[string]any{}, token.KindStructured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := token.Classify(tt.raw, sel).Kind; got != tt.want {
				t.Errorf("Classify() kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Select(t *testing.T) {
	raw := map[string]any{
		"light": "#fff",
		"dark":  "#000",
		"web": map[string]any{
			"light": "#fafafa",
			"dark":  "#0a0a0a",
		},
	}

	tests := []struct {
		name string
		sel  token.Selection
		want any
	}{
		{"theme", token.Selection{Theme: "dark"}, "#000"},
		{"theme before platform", token.Selection{Theme: "light", Platform: "web"}, "#fff"},
		{"platform then nested theme", token.Selection{Theme: "hc", Platform: "web"}, nil},
		{"no match returns map", token.Selection{Theme: "sepia"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := token.Classify(raw, tt.sel).Select(tt.sel)
			if tt.want == nil {
				if got.Kind == token.KindScalar {
					t.Errorf("expected a map, got %v", got.Raw())
				}
				return
			}
			if got.Raw() != tt.want {
				t.Errorf("Select() = %v, want %v", got.Raw(), tt.want)
			}
		})
	}

	nested := token.Classify(map[string]any{
		"web": map[string]any{"dark": "#0a0a0a"},
	}, token.Selection{Theme: "dark", Platform: "web"})
	if got := nested.Select(token.Selection{Theme: "dark", Platform: "web"}).Raw(); got != "#0a0a0a" {
		t.Errorf("nested Select() = %v, want #0a0a0a", got)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{"#fff", "#fff"},
		{16.0, "16"},
		{1.5, "1.5"},
		{4, "4"},
		{true, "true"},
		{nil, ""},
		{[]any{"a", "b"}, `["a","b"]`},
	}

	for _, tt := range tests {
		if got := token.Stringify(tt.raw); got != tt.want {
			t.Errorf("Stringify(%v) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTokenTypeConstants(t *testing.T) {
	types := map[string]string{
		"TypeColor":      token.TypeColor,
		"TypeDimension":  token.TypeDimension,
		"TypeDuration":   token.TypeDuration,
		"TypeBorder":     token.TypeBorder,
		"TypeTypography": token.TypeTypography,
	}

	expected := map[string]string{
		"TypeColor":      "color",
		"TypeDimension":  "dimension",
		"TypeDuration":   "duration",
		"TypeBorder":     "border",
		"TypeTypography": "typography",
	}

	for name, got := range types {
		if want := expected[name]; got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

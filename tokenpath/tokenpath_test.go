/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokenpath_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"bennypowers.dev/tokencraft/tokenpath"
)

func TestGet(t *testing.T) {
	tree := map[string]any{
		"color": map[string]any{
			"bg": map[string]any{"$value": "#fff"},
		},
		"space": "not-a-map",
	}

	tests := []struct {
		path   string
		wantOK bool
	}{
		{"color", true},
		{"color.bg", true},
		{"color.bg.$value", true},
		{"color.fg", false},
		{"space.small", false},
		{"missing.path", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, ok := tokenpath.Get(tree, tt.path)
			if ok != tt.wantOK {
				t.Errorf("Get(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
		})
	}

	if v, _ := tokenpath.Get(tree, "color.bg.$value"); v != "#fff" {
		t.Errorf("Get(color.bg.$value) = %v, want #fff", v)
	}
}

func TestFirst(t *testing.T) {
	m := map[string]any{"light": "#fff", "web": "#eee"}

	v, key, ok := tokenpath.First(m, "acme", "dark", "web")
	if !ok || key != "web" || v != "#eee" {
		t.Errorf("First() = %v, %q, %v; want #eee, web, true", v, key, ok)
	}

	if _, _, ok := tokenpath.First(m, "", "dark"); ok {
		t.Error("expected no match")
	}
}

func TestMerge(t *testing.T) {
	base := map[string]any{
		"color": map[string]any{
			"bg": map[string]any{"$value": "#fff", "$type": "color"},
			"fg": map[string]any{"$value": "#000"},
		},
		"typography": map[string]any{
			"body": map[string]any{"$value": map[string]any{"fontSize": 16, "fontFamily": "Inter"}},
		},
	}
	override := map[string]any{
		"color": map[string]any{
			"bg": map[string]any{"$value": "#111"},
		},
		"typography": map[string]any{
			"body": map[string]any{"$value": map[string]any{"fontSize": 18}},
		},
	}

	got := tokenpath.Merge(base, override)
	want := map[string]any{
		"color": map[string]any{
			"bg": map[string]any{"$value": "#111"},
			"fg": map[string]any{"$value": "#000"},
		},
		"typography": map[string]any{
			"body": map[string]any{"$value": map[string]any{"fontSize": 18}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}

	// inputs untouched
	if v, _ := tokenpath.Get(base, "color.bg.$value"); v != "#fff" {
		t.Errorf("base mutated: %v", v)
	}
}

func TestLeaves(t *testing.T) {
	tree := map[string]any{
		"$description": "root",
		"color": map[string]any{
			"$type": "color",
			"bg":    map[string]any{"$value": "#fff"},
			"brand": map[string]any{
				"primary": map[string]any{"$value": "#f00"},
			},
		},
		"space": map[string]any{"sm": map[string]any{"$value": 4}},
	}

	want := []string{"color.bg", "color.brand.primary", "space.sm"}
	if diff := cmp.Diff(want, tokenpath.Leaves(tree)); diff != "" {
		t.Errorf("Leaves() mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePointer(t *testing.T) {
	tests := []struct {
		ref      string
		file     string
		segments []string
		ok       bool
	}{
		{"#/sets/base", "", []string{"sets", "base"}, true},
		{"base.json", "base.json", nil, true},
		{"base.json#/color", "base.json", []string{"color"}, true},
		{"#/a~1b/c~0d", "", []string{"a/b", "c~d"}, true},
		{"#notapointer", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			file, segments, ok := tokenpath.ParsePointer(tt.ref)
			if ok != tt.ok || file != tt.file {
				t.Fatalf("ParsePointer(%q) = %q, %v, %v", tt.ref, file, segments, ok)
			}
			if diff := cmp.Diff(tt.segments, segments); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if got := tokenpath.Pointer([]string{"a/b", "c~d"}); got != "#/a~1b/c~0d" {
		t.Errorf("Pointer() = %q", got)
	}
	if got, ok := tokenpath.PointerToPath("#/color/brand/primary"); !ok || got != "color.brand.primary" {
		t.Errorf("PointerToPath() = %q, %v", got, ok)
	}
}

func TestSetSegments(t *testing.T) {
	tree := map[string]any{}
	tokenpath.SetSegments(tree, []string{"a", "b", "c"}, 1)
	if v, ok := tokenpath.Get(tree, "a.b.c"); !ok || v != 1 {
		t.Errorf("SetSegments did not write value: %v %v", v, ok)
	}
}

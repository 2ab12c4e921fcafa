/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token_test

import (
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/tokencraft/schema"
	"bennypowers.dev/tokencraft/token"
)

func TestReferencePattern_FindAll(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"{color.primary}", []string{"color.primary"}},
		{"prefix {color.primary} suffix", []string{"color.primary"}},
		{"{a} and {b}", []string{"a", "b"}},
		{"no references", nil},
		{"{ spaced.path }", []string{"spaced.path"}},
		{"{}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []string
			for _, r := range token.DefaultPattern().FindAll(tt.input) {
				got = append(got, r.TokenPath)
			}
			if !slices.Equal(got, tt.expected) {
				t.Errorf("FindAll(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestReferencePattern_Whole(t *testing.T) {
	p := token.DefaultPattern()

	if path, ok := p.Whole(" {color.bg} "); !ok || path != "color.bg" {
		t.Errorf("Whole() = %q, %v", path, ok)
	}
	if _, ok := p.Whole("1px solid {color.border}"); ok {
		t.Error("embedded reference is not whole")
	}
	if _, ok := p.Whole("{a}{b}"); ok {
		t.Error("two references are not whole")
	}
}

func TestReferencePattern_Replace(t *testing.T) {
	got := token.DefaultPattern().Replace("1px solid {color.border}", func(r token.Reference) string {
		return "var(--" + r.TokenPath + ")"
	})
	if want := "1px solid var(--color.border)"; got != want {
		t.Errorf("Replace() = %q, want %q", got, want)
	}
}

func TestCompilePattern(t *testing.T) {
	p, err := token.CompilePattern(`\$\{([^}]+)\}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path, ok := p.Whole("${color.bg}"); !ok || path != "color.bg" {
		t.Errorf("custom pattern Whole() = %q, %v", path, ok)
	}

	_, err = token.CompilePattern(`\{[^}]+\}`)
	if !errors.Is(err, schema.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference for pattern without group, got %v", err)
	}

	def, err := token.CompilePattern("")
	if err != nil || def != token.DefaultPattern() {
		t.Errorf("empty pattern should return default")
	}
}

func TestExtractAllRefs(t *testing.T) {
	got := token.ExtractAllRefs("{a} || {b.c} || #fff")
	if !slices.Equal(got, []string{"a", "b.c"}) {
		t.Errorf("ExtractAllRefs() = %v", got)
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package naming converts token paths into output identifiers.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case is an output naming convention.
type Case string

const (
	// Kebab produces CSS custom property names, e.g. --prefix-button-bg.
	Kebab Case = "kebab"
	// Camel produces identifiers like buttonBg.
	Camel Case = "camel"
	// Pascal produces identifiers like ButtonBg.
	Pascal Case = "pascal"
)

// ParseCase parses a naming convention. The empty string is Kebab.
func ParseCase(s string) (Case, error) {
	switch Case(strings.ToLower(s)) {
	case "", Kebab:
		return Kebab, nil
	case Camel:
		return Camel, nil
	case Pascal:
		return Pascal, nil
	default:
		return "", fmt.Errorf("unknown name case %q (want kebab, camel or pascal)", s)
	}
}

// SplitWords splits a string on hyphens, underscores, dots, spaces and
// camelCase boundaries.
func SplitWords(s string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, r := range s {
		switch {
		case r == '-' || r == '_' || r == '.' || r == ' ' || r == '/':
			flush()
		case unicode.IsUpper(r) && i > 0:
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return words
}

// ToKebab converts words to kebab-case.
func ToKebab(parts ...string) string {
	words := splitAll(parts)
	return strings.ToLower(strings.Join(words, "-"))
}

// ToSnake converts words to snake_case.
func ToSnake(parts ...string) string {
	words := splitAll(parts)
	return strings.ToLower(strings.Join(words, "_"))
}

// ToCamel converts words to camelCase.
func ToCamel(parts ...string) string {
	words := splitAll(parts)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0]) + ToPascal(words[1:]...)
}

// ToPascal converts words to PascalCase.
func ToPascal(parts ...string) string {
	caser := cases.Title(language.Und)
	var sb strings.Builder
	for _, w := range splitAll(parts) {
		sb.WriteString(caser.String(w))
	}
	return sb.String()
}

func splitAll(parts []string) []string {
	var words []string
	for _, p := range parts {
		words = append(words, SplitWords(p)...)
	}
	return words
}

// Join joins words in the given convention.
func (c Case) Join(parts ...string) string {
	switch c {
	case Camel:
		return ToCamel(parts...)
	case Pascal:
		return ToPascal(parts...)
	default:
		return ToKebab(parts...)
	}
}

// Key builds a generator output key. Kebab keys are CSS custom property
// names: --<prefix>-<component>-<segments>. Camel and Pascal keys join
// the same words.
func (c Case) Key(prefix, component string, segments ...string) string {
	parts := append([]string{prefix, component}, segments...)
	name := c.Join(parts...)
	if c == Kebab || c == "" {
		if name == "" {
			return ""
		}
		return "--" + name
	}
	return name
}

// Placeholder returns the CSS variable reference for a token path,
// e.g. var(--sys-color-bg). fallback is included when non-empty.
func Placeholder(systemPrefix, path, fallback string) string {
	name := "--" + ToKebab(systemPrefix, path)
	if fallback == "" {
		return "var(" + name + ")"
	}
	return "var(" + name + ", " + fallback + ")"
}

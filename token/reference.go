/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"fmt"
	"regexp"
	"strings"

	"bennypowers.dev/tokencraft/schema"
)

// DefaultReferencePattern matches {token.path} references.
const DefaultReferencePattern = `\{([^}]+)\}`

// Reference is one reference found in a string.
type Reference struct {
	// Raw is the matched text, including delimiters.
	Raw string

	// TokenPath is the referenced dot path.
	TokenPath string

	// Start and End are byte offsets of Raw in the source string.
	Start, End int
}

// ReferencePattern finds references in token values.
type ReferencePattern struct {
	re *regexp.Regexp
}

var defaultPattern = &ReferencePattern{re: regexp.MustCompile(DefaultReferencePattern)}

// DefaultPattern returns the {path} reference pattern.
func DefaultPattern() *ReferencePattern {
	return defaultPattern
}

// CompilePattern compiles a reference pattern. It must have exactly one
// capture group, which yields the token path.
func CompilePattern(expr string) (*ReferencePattern, error) {
	if expr == "" {
		return defaultPattern, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrInvalidReference, err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("%w: pattern %q must have exactly one capture group", schema.ErrInvalidReference, expr)
	}
	return &ReferencePattern{re: re}, nil
}

// String returns the pattern source.
func (p *ReferencePattern) String() string {
	return p.re.String()
}

// Contains reports whether s contains any reference.
func (p *ReferencePattern) Contains(s string) bool {
	return p.re.MatchString(s)
}

// FindAll returns every reference in s, in order.
func (p *ReferencePattern) FindAll(s string) []Reference {
	idx := p.re.FindAllStringSubmatchIndex(s, -1)
	refs := make([]Reference, 0, len(idx))
	for _, m := range idx {
		if len(m) < 4 || m[2] < 0 {
			continue
		}
		refs = append(refs, Reference{
			Raw:       s[m[0]:m[1]],
			TokenPath: strings.TrimSpace(s[m[2]:m[3]]),
			Start:     m[0],
			End:       m[1],
		})
	}
	return refs
}

// Whole returns the path when s, trimmed, is exactly one reference.
func (p *ReferencePattern) Whole(s string) (string, bool) {
	s = strings.TrimSpace(s)
	refs := p.FindAll(s)
	if len(refs) != 1 || refs[0].Start != 0 || refs[0].End != len(s) {
		return "", false
	}
	return refs[0].TokenPath, true
}

// Replace rewrites each reference in s with the result of fn.
func (p *ReferencePattern) Replace(s string, fn func(ref Reference) string) string {
	refs := p.FindAll(s)
	if len(refs) == 0 {
		return s
	}
	var sb strings.Builder
	last := 0
	for _, ref := range refs {
		sb.WriteString(s[last:ref.Start])
		sb.WriteString(fn(ref))
		last = ref.End
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// ExtractAllRefs extracts all {path} references from a string.
func ExtractAllRefs(value string) []string {
	refs := defaultPattern.FindAll(value)
	paths := make([]string, 0, len(refs))
	for _, r := range refs {
		paths = append(paths, r.TokenPath)
	}
	return paths
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tokenpath

import "strings"

// ParsePointer splits a reference of the form "file.json#/a/b", "#/a/b"
// or "file.json" into its file part and decoded pointer segments.
// RFC 6901 escapes are decoded in each segment; ~1 before ~0.
// ok is false when the fragment is present but not a JSON Pointer.
func ParsePointer(ref string) (file string, segments []string, ok bool) {
	file, fragment, hasFragment := strings.Cut(ref, "#")
	if !hasFragment || fragment == "" {
		return file, nil, true
	}
	if !strings.HasPrefix(fragment, "/") {
		return file, nil, false
	}
	parts := strings.Split(strings.TrimPrefix(fragment, "/"), "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		parts[i] = part
	}
	return file, parts, true
}

// Pointer encodes segments as a local JSON Pointer ("#/a/b").
func Pointer(segments []string) string {
	var sb strings.Builder
	sb.WriteString("#")
	for _, s := range segments {
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		sb.WriteString("/")
		sb.WriteString(s)
	}
	return sb.String()
}

// PointerToPath converts a local JSON Pointer to a dot path.
// Example: "#/color/brand/primary" -> "color.brand.primary"
func PointerToPath(ref string) (string, bool) {
	file, segments, ok := ParsePointer(ref)
	if !ok || file != "" || len(segments) == 0 {
		return "", false
	}
	return strings.Join(segments, Separator), true
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package schema provides resolution document version handling
// and the sentinel errors shared by the resolvers.
package schema

import "fmt"

// Version represents a resolution document format version.
type Version int

const (
	// Unknown represents an undetected or unrecognized version.
	Unknown Version = iota

	// V2025_10 represents the 2025.10 resolver module format.
	V2025_10
)

// String returns the string representation of the version.
func (v Version) String() string {
	switch v {
	case V2025_10:
		return "2025.10"
	default:
		return "unknown"
	}
}

// URL returns the JSON Schema URL for this version.
func (v Version) URL() string {
	switch v {
	case V2025_10:
		return "https://www.designtokens.org/schemas/2025.10/resolver.json"
	default:
		return ""
	}
}

// Supported reports whether documents of this version can be resolved.
func (v Version) Supported() bool {
	return v == V2025_10
}

// FromURL returns the version from a JSON Schema URL.
func FromURL(url string) (Version, error) {
	switch url {
	case "https://www.designtokens.org/schemas/2025.10/resolver.json",
		"https://www.designtokens.org/schemas/2025.10.json":
		return V2025_10, nil
	default:
		return Unknown, fmt.Errorf("%w: unrecognized schema URL %s", ErrUnknownVersion, url)
	}
}

// FromString returns the version from a string representation.
func FromString(s string) (Version, error) {
	switch s {
	case "2025.10", "v2025.10", "v2025_10", "2025-10":
		return V2025_10, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import "errors"

// Sentinel errors for resolution. Diagnostics unwrap to these.
var (
	// ErrUnknownVersion indicates an unrecognized document version.
	ErrUnknownVersion = errors.New("unknown document version")

	// ErrInvalidReference indicates a reference is malformed.
	ErrInvalidReference = errors.New("invalid token reference")

	// ErrCircularReference indicates a circular reference was detected.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrUnresolvedReference indicates a reference target does not exist.
	ErrUnresolvedReference = errors.New("unresolved token reference")

	// ErrTypeMismatch indicates a value of the wrong kind, such as an
	// unsupported version or an undefined modifier context.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnresolvedFallback indicates every fallback candidate failed.
	ErrUnresolvedFallback = errors.New("unresolved fallback chain")

	// ErrDepthExceeded indicates the resolution depth limit was hit.
	ErrDepthExceeded = errors.New("maximum resolution depth exceeded")
)

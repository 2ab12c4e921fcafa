/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"context"

	"bennypowers.dev/tokencraft/diagnostic"
)

// Selection names the requested theme, platform and brand, plus any
// further named modifier contexts.
type Selection struct {
	Theme    string
	Platform string
	Brand    string

	// Modifiers maps modifier names to context names. The document
	// resolver reads it; the path resolver ignores it.
	Modifiers map[string]string
}

// Resolution is a fully resolved nested token tree.
type Resolution struct {
	Tokens      map[string]any
	Diagnostics []diagnostic.Diagnostic
}

// HasErrors reports whether the resolution carries blocking diagnostics.
func (r *Resolution) HasErrors() bool {
	return diagnostic.HasErrors(r.Diagnostics)
}

// ContextResolver resolves a whole token tree for one selection.
type ContextResolver interface {
	ResolveTree(ctx context.Context, sel Selection) (*Resolution, error)
}

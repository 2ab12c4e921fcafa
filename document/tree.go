/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package document

import (
	"context"

	"bennypowers.dev/tokencraft/token"
)

var _ token.ContextResolver = (*Resolver)(nil)

// ResolveTree resolves the document for sel. Theme, platform and brand
// select contexts of same-named modifiers when the document declares
// them; explicit sel.Modifiers entries win.
func (r *Resolver) ResolveTree(ctx context.Context, sel token.Selection) (*token.Resolution, error) {
	res, err := r.Resolve(ctx, r.Inputs(sel))
	if err != nil {
		return nil, err
	}
	return &token.Resolution{Tokens: res.Tokens, Diagnostics: res.Diagnostics}, nil
}

// Inputs maps a selection onto modifier inputs.
func (r *Resolver) Inputs(sel token.Selection) map[string]string {
	inputs := make(map[string]string, len(sel.Modifiers)+3)
	for name, value := range map[string]string{
		"theme":    sel.Theme,
		"platform": sel.Platform,
		"brand":    sel.Brand,
	} {
		if value == "" {
			continue
		}
		if _, ok := r.doc.Modifier(name); ok {
			inputs[name] = value
		}
	}
	for name, value := range sel.Modifiers {
		inputs[name] = value
	}
	return inputs
}

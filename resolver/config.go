/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"bennypowers.dev/tokencraft/config"
)

// OptionsFromConfig maps a loaded config onto resolver options. The
// programmatic fields (pipeline, transforms, sinks, cache) stay empty.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		Theme:                cfg.Theme,
		Platform:             cfg.Platform,
		Brand:                cfg.Brand,
		SystemTokenPrefix:    cfg.SystemTokenPrefix,
		ReferenceNamespace:   cfg.ReferenceNamespace,
		ResolveToReferences:  cfg.ResolvesToReferences(),
		EmitVarFallbackChain: cfg.EmitsVarFallbackChain(),
		FallbackDelimiter:    cfg.FallbackDelimiter,
		ReferencePattern:     cfg.ReferencePattern,
		MaxDepth:             cfg.MaxDepth,
		Units:                cfg.UnitPreferences.WithDefaults(),
		Strict:               cfg.Strict,
	}
}

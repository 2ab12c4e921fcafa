/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package workspace loads the project config, token tree and resolvers
// shared by the CLI commands.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"bennypowers.dev/tokencraft/config"
	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/document"
	"bennypowers.dev/tokencraft/fs"
	"bennypowers.dev/tokencraft/load"
	"bennypowers.dev/tokencraft/resolver"
)

// ErrNoFiles is returned when neither arguments nor config name any token files.
var ErrNoFiles = errors.New("no files specified and no files found in config")

// Root returns the project directory.
func Root() string {
	if root := viper.GetString("root"); root != "" {
		return root
	}
	return "."
}

// Config loads .config/design-tokens.* from the project root and overlays
// the values bound from flags and TOKENCRAFT_* environment variables.
func Config() (*config.Config, error) {
	return ConfigFrom(fs.NewOSFileSystem(), Root())
}

// ConfigFrom is Config on an explicit filesystem and root.
func ConfigFrom(filesystem fs.FileSystem, root string) (*config.Config, error) {
	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if v := viper.GetString("theme"); v != "" {
		cfg.Theme = v
	}
	if v := viper.GetString("platform"); v != "" {
		cfg.Platform = v
	}
	if v := viper.GetString("brand"); v != "" {
		cfg.Brand = v
	}
	if viper.GetBool("strict") {
		cfg.Strict = true
	}
	if mods := viper.GetStringMapString("modifier"); len(mods) > 0 {
		if cfg.Modifiers == nil {
			cfg.Modifiers = make(map[string]string, len(mods))
		}
		maps.Copy(cfg.Modifiers, mods)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Loader creates a file loader rooted at dir. Remote references are
// enabled with --remote.
func Loader(dir string) (*load.FileLoader, error) {
	opts := load.Options{
		Root: dir,
		CDN:  load.CDN(viper.GetString("cdn")),
	}
	if viper.GetBool("remote") {
		opts.Fetcher = load.NewHTTPFetcher(0)
		opts.FetchTimeout = viper.GetDuration("fetch-timeout")
		if opts.FetchTimeout == 0 {
			opts.FetchTimeout = 30 * time.Second
		}
	}
	return load.NewFileLoader(opts)
}

// Tree loads and merges the token files named by args, or by the config
// when args is empty.
func Tree(ctx context.Context, l *load.FileLoader, cfg *config.Config, args []string) (map[string]any, error) {
	specs := cfg.Files
	if len(args) > 0 {
		specs = make([]config.FileSpec, len(args))
		for i, arg := range args {
			specs[i] = config.FileSpec{Path: arg}
		}
	}
	if len(specs) == 0 {
		return nil, ErrNoFiles
	}
	return l.Tree(ctx, specs...)
}

// Resolver loads the token tree and creates a path resolver for it.
func Resolver(ctx context.Context, cfg *config.Config, args []string) (*resolver.Resolver, error) {
	l, err := Loader(Root())
	if err != nil {
		return nil, err
	}
	tree, err := Tree(ctx, l, cfg, args)
	if err != nil {
		return nil, err
	}
	return resolver.New(tree, resolver.OptionsFromConfig(cfg))
}

// DocumentPath returns the resolution document to use: the argument when
// given, otherwise the config's document.
func DocumentPath(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	path := cfg.DocumentPath(Root())
	if path == "" {
		return "", fmt.Errorf("no resolution document specified and none found in config")
	}
	return path, nil
}

// DocumentResolver loads the document at path and creates a resolver for
// it. Local documents resolve their file references relative to their
// own directory.
func DocumentResolver(ctx context.Context, cfg *config.Config, path string) (*document.Resolver, error) {
	dir, ref := Root(), path
	if load.ParseSpecifier(path).Kind == load.KindLocal {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve document path: %w", err)
		}
		dir, ref = filepath.Dir(abs), filepath.Base(abs)
	}

	l, err := Loader(dir)
	if err != nil {
		return nil, err
	}
	raw, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	doc, err := document.FromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid resolution document %s: %w", path, err)
	}

	return document.NewResolver(doc, document.Options{
		Loader:           l,
		MaxDepth:         cfg.MaxDepth,
		Strict:           cfg.Strict,
		ReferencePattern: cfg.ReferencePattern,
	})
}

// Report logs diagnostics by severity and returns how many are errors.
func Report(ds []diagnostic.Diagnostic) int {
	log := diagnostic.NewLog(diagnostic.WithLogger())
	errs := 0
	for _, d := range ds {
		if d.Severity == diagnostic.SeverityError {
			errs++
		}
		log.Record(d)
	}
	return errs
}

// Failed reports whether ds should fail the command: any blocking
// diagnostic, or any diagnostic at all in strict mode.
func Failed(ds []diagnostic.Diagnostic, strict bool) bool {
	if strict {
		return len(ds) > 0
	}
	return diagnostic.HasErrors(ds)
}

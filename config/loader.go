/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	tcfs "bennypowers.dev/tokencraft/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "design-tokens"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/design-tokens.{yaml,yml,json} from rootDir.
// Fields absent from the file keep their Default values. JSON configs may
// carry comments and trailing commas. Returns nil, nil when no config
// exists.
func Load(filesystem tcfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := Default()
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", configPath, err)
			}
		case ".json":
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", configPath, err)
			}
		}

		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem tcfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// ExpandFiles expands glob patterns in Files and returns one spec per
// matched file, keeping each spec's prefix. Relative paths are joined
// to rootDir. Package specifiers and URLs are passed through unchanged.
func (c *Config) ExpandFiles(filesystem tcfs.FileSystem, rootDir string) ([]FileSpec, error) {
	var result []FileSpec

	for _, spec := range c.Files {
		expanded, err := expandFilePath(filesystem, rootDir, spec.Path)
		if err != nil {
			return nil, err
		}
		for _, path := range expanded {
			result = append(result, FileSpec{Path: path, Prefix: spec.Prefix})
		}
	}

	return result, nil
}

// DocumentPath returns the Document path joined to rootDir.
func (c *Config) DocumentPath(rootDir string) string {
	if c.Document == "" || filepath.IsAbs(c.Document) || isRemote(c.Document) {
		return c.Document
	}
	return filepath.Join(rootDir, c.Document)
}

// expandFilePath expands a single file path which may contain globs.
// Package specifiers and URLs are passed through unchanged.
func expandFilePath(filesystem tcfs.FileSystem, rootDir, pattern string) ([]string, error) {
	if isRemote(pattern) {
		return []string{pattern}, nil
	}
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}
	if !containsGlob(pattern) {
		// missing files surface when read
		return []string{pattern}, nil
	}
	return expandGlob(filesystem, filepath.ToSlash(pattern))
}

func isRemote(pattern string) bool {
	for _, prefix := range []string{"npm:", "jsr:", "http://", "https://"} {
		if strings.HasPrefix(pattern, prefix) {
			return true
		}
	}
	return false
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob walks the pattern's static base directory and returns the
// files matching the rest, in lexical order. Unreadable directories are
// skipped.
func expandGlob(filesystem tcfs.FileSystem, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}
	base, rel := doublestar.SplitPattern(pattern)

	var matches []string
	err := fs.WalkDir(filesystem, base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := strings.TrimPrefix(filepath.ToSlash(path), base)
		name = strings.TrimPrefix(name, "/")
		if ok, _ := doublestar.Match(rel, name); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

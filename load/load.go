/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load reads token sources and resolution documents from the
// filesystem, node_modules, or the network.
package load

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"bennypowers.dev/tokencraft/config"
	"bennypowers.dev/tokencraft/fs"
	"bennypowers.dev/tokencraft/internal/logger"
	"bennypowers.dev/tokencraft/parser"
	"bennypowers.dev/tokencraft/tokenpath"
)

var (
	// ErrLocalResolution indicates that local filesystem resolution failed.
	ErrLocalResolution = errors.New("local resolution failed")

	// ErrNetworkFallback indicates that the CDN network fallback also failed.
	ErrNetworkFallback = errors.New("network fallback failed")

	// ErrRemoteDisabled is returned for URLs when no Fetcher is configured.
	ErrRemoteDisabled = errors.New("remote references are disabled")
)

// Options configures a FileLoader.
type Options struct {
	// Root is the directory relative references resolve against.
	// Defaults to the working directory.
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Fetcher enables URL references and CDN fallback for package
	// specifiers that are not installed. Nil means local only.
	Fetcher Fetcher

	// CDN selects the CDN provider for network fallback.
	CDN CDN

	// FetchTimeout bounds each network fetch. Defaults to DefaultTimeout.
	FetchTimeout time.Duration
}

// FileLoader resolves source references to decoded maps. Results are
// cached by reference string; callers receive copies.
type FileLoader struct {
	fs      fs.FileSystem
	root    string
	fetcher Fetcher
	cdn     CDN
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]map[string]any
}

// NewFileLoader creates a loader. The root is made absolute.
func NewFileLoader(opts Options) (*FileLoader, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = absRoot
	}

	cdn, err := ParseCDN(string(opts.CDN))
	if err != nil {
		return nil, err
	}

	timeout := opts.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &FileLoader{
		fs:      filesystem,
		root:    root,
		fetcher: opts.Fetcher,
		cdn:     cdn,
		timeout: timeout,
		cache:   make(map[string]map[string]any),
	}, nil
}

// Root returns the absolute directory relative references resolve against.
func (l *FileLoader) Root() string {
	return l.root
}

// Load reads and decodes the source named by ref. A fragment ("#/...")
// is ignored here; pointer traversal is the caller's concern.
func (l *FileLoader) Load(ctx context.Context, ref string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ref, _, _ = strings.Cut(ref, "#")

	l.mu.Lock()
	cached, ok := l.cache[ref]
	l.mu.Unlock()
	if ok {
		return tokenpath.Clone(cached).(map[string]any), nil
	}

	data, err := l.read(ctx, ParseSpecifier(ref))
	if err != nil {
		return nil, err
	}

	decoded, err := parser.DecodeAs(data, parser.FormatForPath(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ref, err)
	}

	l.mu.Lock()
	l.cache[ref] = decoded
	l.mu.Unlock()
	logger.Debug("loaded %s", ref)

	return tokenpath.Clone(decoded).(map[string]any), nil
}

// Tree loads every file named by specs, expanding globs, nests each
// under its prefix, and deep-merges them in order.
func (l *FileLoader) Tree(ctx context.Context, specs ...config.FileSpec) (map[string]any, error) {
	files, err := (&config.Config{Files: specs}).ExpandFiles(l.fs, l.root)
	if err != nil {
		return nil, fmt.Errorf("expanding files: %w", err)
	}

	tree := map[string]any{}
	for _, f := range files {
		m, err := l.Load(ctx, f.Path)
		if err != nil {
			return nil, err
		}
		if f.Prefix != "" {
			nested := map[string]any{}
			tokenpath.SetSegments(nested, tokenpath.Split(f.Prefix), m)
			m = nested
		}
		tree = tokenpath.Merge(tree, m)
	}
	return tree, nil
}

func (l *FileLoader) read(ctx context.Context, spec Specifier) ([]byte, error) {
	switch spec.Kind {
	case KindURL:
		if l.fetcher == nil {
			return nil, fmt.Errorf("%w: %s", ErrRemoteDisabled, spec.Raw)
		}
		return l.fetch(ctx, spec.Raw)

	case KindNPM, KindJSR:
		path, err := l.packagePath(spec)
		if err == nil {
			content, readErr := l.fs.ReadFile(path)
			if readErr == nil {
				return content, nil
			}
			err = fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		return l.fetchFromCDN(ctx, spec, err)

	default:
		path := spec.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.root, path)
		}
		content, err := l.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return content, nil
	}
}

// packagePath walks up from the root looking for the package in
// node_modules.
func (l *FileLoader) packagePath(spec Specifier) (string, error) {
	dir := l.root
	for {
		base := filepath.Join(dir, "node_modules")
		candidate := filepath.Clean(filepath.Join(base, spec.modulePath(), spec.File))
		if !isInsideDir(candidate, base) {
			return "", fmt.Errorf("path traversal detected in specifier: %s", spec.Raw)
		}
		if l.fs.Exists(candidate) {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("package not found: %s (looked in node_modules starting from %s)", spec.Package, l.root)
}

// fetchFromCDN attempts to fetch content from CDN as a fallback.
// Returns localErr unchanged if no fetcher is configured or the
// specifier has no URL on the configured CDN.
func (l *FileLoader) fetchFromCDN(ctx context.Context, spec Specifier, localErr error) ([]byte, error) {
	if l.fetcher == nil {
		return nil, localErr
	}

	url, ok := spec.CDNURL(l.cdn)
	if !ok {
		return nil, localErr
	}

	content, err := l.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w (%w), %w: %w", ErrLocalResolution, localErr, ErrNetworkFallback, err)
	}
	return content, nil
}

func (l *FileLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.fetcher.Fetch(ctx, url)
}

// Load reads a single source with a one-off loader.
func Load(ctx context.Context, ref string, opts Options) (map[string]any, error) {
	l, err := NewFileLoader(opts)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, ref)
}

// Tree loads and merges the files named by specs with a one-off loader.
func Tree(ctx context.Context, opts Options, specs ...config.FileSpec) (map[string]any, error) {
	l, err := NewFileLoader(opts)
	if err != nil {
		return nil, err
	}
	return l.Tree(ctx, specs...)
}

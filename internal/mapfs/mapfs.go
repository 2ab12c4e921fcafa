/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory FileSystem for tests.
package mapfs

import (
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem is an in-memory FileSystem backed by fstest.MapFS.
// Paths are absolute and slash-separated; the leading slash is dropped
// internally because fs.FS paths are unrooted.
type MapFileSystem struct {
	mu      sync.RWMutex
	files   fstest.MapFS
	modTime time.Time
}

// New creates an empty filesystem.
func New() *MapFileSystem {
	return &MapFileSystem{
		files:   make(fstest.MapFS),
		modTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddFile adds a file with the given content.
func (m *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(p)] = &fstest.MapFile{Data: []byte(content), Mode: mode, ModTime: m.modTime}
}

// WriteFile implements FileSystem.
func (m *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = clean(name)
	if dir := path.Dir(name); dir != "." {
		if f, ok := m.files[dir]; ok && !f.Mode.IsDir() {
			return &fs.PathError{Op: "open", Path: name, Err: fmt.Errorf("not a directory")}
		}
	}
	m.files[name] = &fstest.MapFile{Data: slices.Clone(data), Mode: perm, ModTime: m.modTime}
	return nil
}

// ReadFile implements FileSystem.
func (m *MapFileSystem) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadFile(m.files, clean(name))
}

// MkdirAll implements FileSystem. Directories are implied by their files,
// so only a marker is recorded.
func (m *MapFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = clean(p)
	if f, ok := m.files[p]; ok && !f.Mode.IsDir() {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fmt.Errorf("not a directory")}
	}
	m.files[p] = &fstest.MapFile{Mode: fs.ModeDir | perm.Perm(), ModTime: m.modTime}
	return nil
}

// ReadDir implements FileSystem.
func (m *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadDir(m.files, clean(name))
}

// Stat implements FileSystem.
func (m *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.Stat(m.files, clean(name))
}

// Exists implements FileSystem. A path is a directory when any file
// lives beneath it.
func (m *MapFileSystem) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = clean(p)
	if _, ok := m.files[p]; ok {
		return true
	}
	prefix := p + "/"
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Open implements FileSystem.
func (m *MapFileSystem) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.Open(clean(name))
}

// Files returns the absolute paths of every regular file, sorted.
func (m *MapFileSystem) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for _, name := range slices.Sorted(maps.Keys(m.files)) {
		if !m.files[name].Mode.IsDir() {
			out = append(out, "/"+name)
		}
	}
	return out
}

func clean(p string) string {
	cleaned := path.Clean("/" + strings.TrimPrefix(p, "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" {
		return "."
	}
	return cleaned
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides fixture and golden-file helpers for tests.
//
// Fixture paths are relative to the repository's testdata directory and
// are found from any package up to two levels deep.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bennypowers.dev/tokencraft/internal/mapfs"
)

// updateGolden rewrites golden files with actual output when -update is set.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// candidates lists where rel may live relative to the test's package.
func candidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
}

// locate returns the first candidate for rel that exists.
func locate(rel string) (string, bool) {
	for _, path := range candidates(rel) {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// NewFixtureFS copies a testdata directory into an in-memory filesystem,
// mounting it at root.
func NewFixtureFS(t *testing.T, fixtureDir string, root string) *mapfs.MapFileSystem {
	t.Helper()

	dir, ok := locate(fixtureDir)
	if !ok {
		t.Fatalf("fixture directory %s not found under testdata", fixtureDir)
	}

	mfs := mapfs.New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.Join(root, rel), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("loading fixtures from %s: %v", fixtureDir, err)
	}
	return mfs
}

// LoadFixtureFile reads a single file from testdata.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()
	path, ok := locate(fixturePath)
	if !ok {
		t.Fatalf("fixture %s not found under testdata", fixturePath)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", fixturePath, err)
	}
	return content
}

// UpdateGoldenFile writes actual to the golden file when -update is set.
// The file is created next to the nearest existing parent directory.
func UpdateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	if !*updateGolden {
		return
	}

	paths := candidates(goldenPath)
	target := paths[0]
	for _, path := range paths {
		if _, err := os.Stat(filepath.Dir(path)); err == nil {
			target = path
			break
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("creating directory for golden file %s: %v", goldenPath, err)
	}
	if err := os.WriteFile(target, actual, 0644); err != nil {
		t.Fatalf("writing golden file %s: %v", goldenPath, err)
	}
	t.Logf("updated golden file: %s", target)
}

// AssertGolden compares actual against a golden file, rewriting it first
// when -update is set.
func AssertGolden(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()
	UpdateGoldenFile(t, goldenPath, actual)
	want := LoadFixtureFile(t, goldenPath)
	if diff := cmp.Diff(string(want), string(actual)); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", goldenPath, diff)
	}
}

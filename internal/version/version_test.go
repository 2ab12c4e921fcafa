/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRead(t *testing.T) {
	info := &debug.BuildInfo{
		GoVersion: "go1.25.5",
		Main:      debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	got := read(func() (*debug.BuildInfo, bool) { return info, true })
	assert.Equal(t, Build{
		Version:   "v1.2.3",
		Commit:    "0123456789abcdef",
		Time:      "2026-01-02T03:04:05Z",
		Dirty:     true,
		GoVersion: "go1.25.5",
	}, got)
	assert.Equal(t, "v1.2.3 (0123456-dirty)", got.String())
}

func TestRead_Devel(t *testing.T) {
	info := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	got := read(func() (*debug.BuildInfo, bool) { return info, true })
	assert.Equal(t, "dev", got.Version)
	assert.Equal(t, "dev", got.String())

	got = read(func() (*debug.BuildInfo, bool) { return nil, false })
	assert.Equal(t, Build{Version: "dev"}, got)
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version provides version information for the tokencraft CLI.
package version

import (
	"runtime/debug"
	"sync"
)

// Set at build time via -ldflags "-X bennypowers.dev/tokencraft/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Time      string `json:"buildTime,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

var (
	once  sync.Once
	build Build
)

// Info returns build information. Values not set through ldflags are read
// from the module and VCS metadata embedded by the Go toolchain.
func Info() Build {
	once.Do(func() { build = read(debug.ReadBuildInfo) })
	return build
}

func read(readBuildInfo func() (*debug.BuildInfo, bool)) Build {
	b := Build{Version: Version, Commit: GitCommit, Time: BuildTime}

	info, ok := readBuildInfo()
	if !ok {
		return b
	}
	b.GoVersion = info.GoVersion
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Time == "" {
				b.Time = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	return b
}

// String formats the build as "version (commit[-dirty])".
func (b Build) String() string {
	if b.Commit == "" {
		return b.Version
	}
	commit := b.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if b.Dirty {
		commit += "-dirty"
	}
	return b.Version + " (" + commit + ")"
}

// Get returns the version string.
func Get() string {
	return Info().Version
}

// UserAgent identifies tokencraft in outgoing requests.
func UserAgent() string {
	return "tokencraft/" + Get()
}

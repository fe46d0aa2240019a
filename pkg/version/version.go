// Package version exposes build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/rshade/metalca/pkg/version.version=v1.2.0 \
//	  -X github.com/rshade/metalca/pkg/version.commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime/debug"
)

//nolint:gochecknoglobals // Set at link time.
var (
	version = "dev"
	commit  = ""
)

// GetVersion returns the release version, falling back to the module
// version recorded in the binary when ldflags were not set.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// GetCommit returns the VCS revision the binary was built from, or "".
func GetCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

// String returns "version (commit)" or just the version.
func String() string {
	c := GetCommit()
	if len(c) > 12 { //nolint:mnd // short hash
		c = c[:12]
	}
	if c == "" {
		return GetVersion()
	}
	return fmt.Sprintf("%s (%s)", GetVersion(), c)
}

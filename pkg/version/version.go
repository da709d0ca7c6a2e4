// Package version reports the scrollkit build version.
package version

import "runtime/debug"

// Set at build time with -ldflags "-X github.com/rshade/scrollkit/pkg/version.version=...".
//
//nolint:gochecknoglobals // Linker-injected build metadata.
var (
	version   = "0.1.0-dev"
	gitCommit = ""
)

// GetVersion returns the semantic version of this build.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, falling back to
// the VCS revision recorded by the Go toolchain.
func GetGitCommit() string {
	if gitCommit != "" {
		return gitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

// Package misc carries build time identification of the program.
package misc

import (
	"runtime/debug"
)

// Set by the linker: -ldflags "-X ubelt/misc.version=... -X ubelt/misc.gitHash=..."
var (
	appName = "ubelt"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit the binary was built from, falling back to VCS
// information recorded by the go tool.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

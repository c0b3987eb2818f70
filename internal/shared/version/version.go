// Package version reports the build version set with -ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/corporatewarfare/cwbot/internal/shared/version.Version=v1.2.3".
var (
	Version = "dev"
	Commit  = ""
)

// String returns the version and, when known, the short commit.
func String() string {
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

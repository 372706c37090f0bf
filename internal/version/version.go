// Package version holds the emojilog build information, set via ldflags:
//
//	-X github.com/ariel-frischer/emojilog/internal/version.Version=1.2.0
package version

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String returns the one-line version description.
func String() string {
	return fmt.Sprintf("emojilog %s (commit %s, built %s)", Version, Commit, BuildDate)
}

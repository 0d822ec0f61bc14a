// Package version carries build information set by ldflags.
package version

var (
	// Version is the semantic version.
	Version = "dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"
)

// Package version provides build-time version information for bbparse.
package version

// Set at build time via -ldflags "-X github.com/open-cli-collective/bbparse/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

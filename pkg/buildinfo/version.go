// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/weslpkg/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/weslpkg/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/weslpkg/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/weslpkg
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v0.3.0"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// String returns a one-line summary such as "v0.3.0 (abc1234, 2025-06-01T10:00:00Z)".
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

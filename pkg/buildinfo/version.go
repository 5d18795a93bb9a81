// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/matzehuels/cdgpath/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/cdgpath/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/cdgpath/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"strings"
)

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the short git SHA.
	Commit = "none"
	// Date is the UTC build time.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope namespaces cached results so that a new release never reads
// artifacts written by an older renderer. Development builds share "dev".
func CacheScope() string {
	v := strings.TrimPrefix(Version, "v")
	if v == "" {
		v = "dev"
	}
	return "v" + v
}

// Package version holds build metadata set through -ldflags "-X".
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for `sectool version`.
func String() string {
	return fmt.Sprintf("sectool %s (commit %s, built %s)", Version, Commit, Date)
}

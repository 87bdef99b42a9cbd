// ============================================================================
// Wish Upon a Brick (wishbrick)
// ============================================================================
//
// Package:     version
// Description: Central version management for the client and the workers
// License:     MIT
// ============================================================================

package version

// Version constants
const (
	// Platform version
	Platform = "1.0.0"

	// Component versions
	Client = "1.0.0"
	Sort   = "1.0.0"
	Filter = "1.0.0"
	Search = "1.0.0"
	Totals = "1.0.0"
)

// Commit is set at build time with -ldflags "-X .../version.Commit=<sha>".
var Commit = "dev"

// ServiceVersion returns the version for a component name
func ServiceVersion(name string) string {
	switch name {
	case "client", "wish":
		return Client
	case "sort":
		return Sort
	case "filter":
		return Filter
	case "search":
		return Search
	case "totals":
		return Totals
	default:
		return Platform
	}
}

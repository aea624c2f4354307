// Package version holds the engine name and build tag reported by the
// "version" CLI command.
package version

const (
	// Name is the engine's display name.
	Name = "Pike"

	// BuildTag is a static release tag bumped by hand; this module does
	// not wire a VCS-stamped build (ldflags) because the CLI is run from
	// source in this corpus's examples.
	BuildTag = "0.1.0-dev"
)

// String returns the "<name> <tag>" line printed by the version command.
func String() string {
	return Name + " " + BuildTag
}

// Package orthobot holds application-level metadata shared by the CLI
// and the pipeline packages.
package orthobot

var (
	// Version is set by the build via ldflags.
	Version = "v0.1.0"
	// Build is a timestamp or commit hash set by the build via ldflags.
	Build = "n/a"
)

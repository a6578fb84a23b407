// Package version exposes the CLI version injected at build time.
package version

// version is overridden at build time via -ldflags.
var version = "v0.0.0-dev"

// Value returns the version string for the current build.
func Value() string {
	return version
}

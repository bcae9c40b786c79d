// Package version exposes the compiler's build version.
package version

// version is overridable at build time via -ldflags.
var version = "0.1.0-dev"

// Get returns the version string.
func Get() string {
	return version
}

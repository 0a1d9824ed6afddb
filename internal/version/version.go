// Package version exposes the build version of the tool.
package version

var version = "0.2.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return version
}

// Package version holds the current version string of transpas.
package version

// Current is the current version of transpas.
const Current = "0.1.0"

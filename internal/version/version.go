// Package version exposes the build stamp the release pipeline injects with
// -ldflags; a plain `go build` reports the dev defaults.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

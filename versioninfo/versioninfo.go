// Package versioninfo records the build identity of the udsbuild binary
// itself. The canonical version of the application being built lives in the
// version package; these values only describe this tool and are injected at
// build time:
//
//	go build -ldflags "-X github.com/unified-data-studio/uds-tools/versioninfo.Version=v0.3.0"
package versioninfo

import "fmt"

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String returns a human-friendly version string for CLI output.
func String() string {
	if Commit == "" {
		return Version
	}

	return fmt.Sprintf("%s+%s", Version, Commit)
}

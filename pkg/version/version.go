// Package version provides version information for the codebundle CLI.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time, e.g.
// go build -ldflags "-X 'codebundle/pkg/version.Version=1.2.3' -X 'codebundle/pkg/version.Commit=abcdefg'"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info contains comprehensive version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // OS and architecture
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a single line such as
// codebundle version 1.2.3 (commit: abcdefg) built at 2024-04-27T15:04:05Z with go1.24.0 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"codebundle version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}

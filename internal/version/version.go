// Package version reports how the swatch binary was built. Release builds
// set Version, Commit and Date with -ldflags "-X"; local builds keep the
// placeholders.
package version

import (
	"fmt"
	"runtime"
)

// Set by the linker, e.g.
// -X github.com/jmylchreest/swatch/internal/version.Version=1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown" // RFC3339

	GoVersion = runtime.Version()
)

// shortCommitLen is how much of the commit hash String prints.
const shortCommitLen = 8

// Info is the build description printed by `swatch version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the build variables and the running platform.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders info on one line. Commit and date appear only when both
// were stamped at link time.
func (i Info) String() string {
	if i.Commit == "unknown" || i.Date == "unknown" {
		return fmt.Sprintf("swatch version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	}
	commit := i.Commit
	if len(commit) > shortCommitLen {
		commit = commit[:shortCommitLen]
	}
	return fmt.Sprintf("swatch version %s (commit: %s, built: %s, %s, %s)",
		i.Version, commit, i.Date, i.GoVersion, i.Platform)
}

// String describes the running binary.
func String() string {
	return GetInfo().String()
}

// Short is the bare version, used by cobra's --version flag.
func Short() string {
	return Version
}

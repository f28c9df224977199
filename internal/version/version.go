// Package version reports the pixelize build: release, commit, build date and
// the Go toolchain. Release builds inject the values with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/pixelize/internal/version.Version=1.0.0 \
//	  -X github.com/jmylchreest/pixelize/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/jmylchreest/pixelize/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/pixelize
package version

import (
	"fmt"
	"runtime"
)

// Name is the program name used in version output and HTTP requests.
const Name = "pixelize"

const unknown = "unknown"

var (
	Version   = "dev"
	Commit    = unknown
	Date      = unknown
	GoVersion = runtime.Version()
)

// Info is the build description printed by "pixelize version --json".
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build description.
func GetInfo() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the one-line version shown by "pixelize version" and --version.
// Development builds omit the commit and build date.
func String() string {
	info := GetInfo()
	if !info.Release() {
		return fmt.Sprintf("%s version %s (%s, %s)", Name, info.Version, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("%s version %s (commit: %s, built: %s, %s, %s)",
		Name, info.Version, info.ShortCommit(), info.Date, info.GoVersion, info.Platform)
}

// Release reports whether the build carries commit and date stamps.
func (i Info) Release() bool {
	return i.Commit != unknown && i.Date != unknown
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	return i.Commit[:min(8, len(i.Commit))]
}

// Short returns the bare version, as used for cobra's Version field.
func Short() string {
	return Version
}

// UserAgent returns the User-Agent sent when downloading remote images,
// e.g. "pixelize/1.0.0 (linux/amd64)".
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s/%s)", Name, Version, runtime.GOOS, runtime.GOARCH)
}

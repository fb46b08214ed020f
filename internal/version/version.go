// Package version exposes build metadata injected with ldflags:
//
//	go build -ldflags "-X github.com/tint-us/lm-api/internal/version.Version=1.2.0 -X github.com/tint-us/lm-api/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"

	"github.com/tint-us/lm-api/internal/constants"
)

// Build-time variables set via ldflags
var (
	Version = "0.0.0-dev"
	Commit  = "unknown"
	Date    = "unknown"
	Dirty   = "false"
)

// Info holds all version information
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version info
func Get() Info {
	return Info{
		Service:   constants.ServiceName,
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		Dirty:     Dirty == "true",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders e.g. "lm-api 1.2.0 (abc1234-dirty) built 2025-05-12T00:00:00Z".
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s) built %s", i.Service, i.Version, i.commitLabel(), i.Date)
}

// Short returns the version with a -dirty suffix when applicable.
func (i Info) Short() string {
	if i.Dirty {
		return i.Version + "-dirty"
	}
	return i.Version
}

func (i Info) commitLabel() string {
	if i.Dirty {
		return i.Commit + "-dirty"
	}
	return i.Commit
}

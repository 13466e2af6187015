// Package build carries the version stamped into the binary.
package build

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	_ "embed"
)

//go:embed VERSION
var rawVersion []byte

// Set via -ldflags by the release build; the VERSION file covers local builds.
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
	GoVersion = runtime.Version()
	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	StartTime = time.Now()
)

//nolint:gochecknoinits // version default.
func init() {
	if Version == "" {
		Version = strings.TrimSpace(string(rawVersion))
	}
}

// Info is a point-in-time snapshot of the build and process.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Uptime    string `json:"uptime"`
}

// GetBuildInfo snapshots the build variables and current uptime.
func GetBuildInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		Platform:  Platform,
		Uptime:    time.Since(StartTime).Round(time.Second).String(),
	}
}

func (i Info) String() string {
	var sb strings.Builder

	sb.WriteString("Version: " + i.Version + "\n")
	if i.Commit != "" {
		sb.WriteString("Commit: " + i.Commit + "\n")
	}

	if i.BuildTime != "" {
		sb.WriteString("Built: " + i.BuildTime + "\n")
	}

	sb.WriteString("Go: " + i.GoVersion + "\n")
	sb.WriteString("Platform: " + i.Platform + "\n")
	sb.WriteString("Uptime: " + i.Uptime + "\n")

	return sb.String()
}

// Package version reports build metadata for the netmgmt binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version, injected at build time with
// -ldflags "-X github.com/neo4j-graph-examples/network-management/pkg/version.Version=v1.2.3".
var Version = "dev"

// GitCommit is the git commit hash, injected at build time.
var GitCommit = "unknown"

// BuildTime is the timestamp when the binary was built, injected at build time.
var BuildTime = "unknown"

// Info is the structured form of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build metadata. When the commit was not injected it falls back
// to the VCS revision the Go toolchain stamped into the binary.
func Get() Info {
	commit := GitCommit
	if commit == "unknown" {
		if rev, ok := vcsRevision(); ok {
			commit = rev
		}
	}
	return Info{
		Version:   Version,
		Commit:    commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a one-line version banner.
func String() string {
	info := Get()
	return fmt.Sprintf("netmgmt %s (commit: %s, built: %s, go: %s)",
		info.Version, info.Commit, info.BuildTime, info.GoVersion)
}

func vcsRevision() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, setting := range bi.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			if len(setting.Value) > 12 {
				return setting.Value[:12], true
			}
			return setting.Value, true
		}
	}
	return "", false
}

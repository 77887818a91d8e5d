// Package version reports build metadata stamped in with -ldflags, e.g.
//
//	-X doomscroll/internal/core/version.version=v1.2.0
//	-X doomscroll/internal/core/version.commit=abc1234
package version

import "runtime/debug"

// BuildInfo is what /meta/version returns
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// Info describes the running binary; commit falls back to the VCS stamp
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		if bi.Commit == "" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					bi.Commit = s.Value[:7]
				}
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	return bi
}

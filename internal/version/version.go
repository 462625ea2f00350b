package version

import (
	"fmt"
	"runtime"
)

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/NZ-WEB/go-monitoring/internal/version.BuildVersion=v1.2.3 \
//	  -X github.com/NZ-WEB/go-monitoring/internal/version.BuildCommit=$(git rev-parse --short HEAD)"
var (
	BuildVersion = "v0.1.0"
	BuildTime    = "unknown"
	BuildCommit  = "unknown"
)

// GetVersion returns the version string including the "v" prefix.
func GetVersion() string {
	return BuildVersion
}

// GetBuildInfo returns version, build time, commit and Go version on one line.
func GetBuildInfo() string {
	return fmt.Sprintf("%s (built: %s, commit: %s, go: %s)",
		BuildVersion, BuildTime, BuildCommit, runtime.Version())
}

// GetShortVersion returns the version without the "v" prefix.
// It is the value exported in app_build_info.
func GetShortVersion() string {
	if len(BuildVersion) > 0 && BuildVersion[0] == 'v' {
		return BuildVersion[1:]
	}
	return BuildVersion
}

// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/Dicklesworthstone/orgchart_viewer/pkg/version.Version=v1.2.3".
package version

// Version is the release tag of this build.
var Version = "v0.1.0"

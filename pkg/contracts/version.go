// Package contracts holds the types shared between the server, the CLI and
// API clients: domain records, request/response shapes, websocket events
// and build information.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the application release
	Version = "1.0.0"

	// APIVersion is the version of the JSON API and websocket messages
	APIVersion = "v1"
)

// Stamped by build.go through -ldflags -X.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GitBranch    string `json:"git_branch"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	APIVersion   string `json:"api_version"`
}

// GetVersionInfo returns the version and build details of the running binary
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GitBranch:    GitBranch,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		APIVersion:   APIVersion,
	}
}

// GetVersionString returns the product name and version
func GetVersionString() string {
	return fmt.Sprintf("Indicadores de Desenvolvimento v%s", Version)
}

// GetFullVersionString adds build details to GetVersionString
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("%s (built: %s, commit: %s, go: %s, os: %s/%s)",
		GetVersionString(), info.BuildTime, info.GitCommit, info.GoVersion, info.OS, info.Architecture)
}

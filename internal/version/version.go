// Package version provides version information for the nest-combo CLI.
//
// Overview:
//   - Responsibility: CLI version metadata (version, commit, build time)
//   - Key Types: Version variables and functions
//   - Concurrency Model: Set at link time, read-only afterwards
//   - Error Semantics: No errors
//   - Performance Notes: Zero-cost
//
// Usage:
//
//	go build -ldflags "-X github.com/eggybyte-technology/nest-combo/internal/version.Version=v1.2.0"
package version

import (
	"fmt"
	"runtime"
)

// Name is the program name shown in version output.
const Name = "nest-combo"

// Version is the CLI version, overridden with -ldflags at release time.
var Version = "v0.0.0-dev"

// Commit is the git commit hash, overridden with -ldflags at release time.
var Commit = "unknown"

// BuildTime is the build timestamp in RFC3339 format.
var BuildTime = "unknown"

// GetVersionString returns the short version line:
// nest-combo - version: v1.2.0
//
// Returns:
//   - string: Formatted version string
func GetVersionString() string {
	return fmt.Sprintf("%s - version: %s", Name, Version)
}

// GetFullVersionInfo returns detailed version information for --verbose output.
func GetFullVersionInfo() string {
	return fmt.Sprintf(`%s (commit %s, built %s)
go version %s (%s/%s)`,
		GetVersionString(), Commit, BuildTime,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/courseforge/courseplan-go/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/courseforge/courseplan-go/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/courseforge/courseplan-go/internal/buildinfo.BuildDate=...
var BuildDate = ""

// Release is the identifier reported to error tracking: the version when
// tagged, otherwise the commit, otherwise "dev".
func Release() string {
	if Version != "" {
		return Version
	}
	if Commit != "" {
		return Commit
	}
	return "dev"
}

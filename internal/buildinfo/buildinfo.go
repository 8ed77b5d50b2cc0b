// Package buildinfo holds build-time metadata injected via -ldflags.
package buildinfo

// Version is the semantic version or tag for this build.
// Inject via: -X github.com/vasptech/vaspx-actions/internal/buildinfo.Version=...
var Version = ""

// Commit is the git commit SHA for this build.
// Inject via: -X github.com/vasptech/vaspx-actions/internal/buildinfo.Commit=...
var Commit = ""

// BuildDate is the RFC3339 build timestamp.
// Inject via: -X github.com/vasptech/vaspx-actions/internal/buildinfo.BuildDate=...
var BuildDate = ""

// String renders the build metadata for logs and CLI version output.
func String() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if Commit != "" {
		version += " (" + shortCommit(Commit) + ")"
	}
	if BuildDate != "" {
		version += " built " + BuildDate
	}
	return version
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

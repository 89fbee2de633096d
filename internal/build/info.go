// Package build exposes build-time metadata injected via ldflags.
package build

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/joestump/ideaboard/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// Info is the build metadata as reported by the version command and /health.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Branch  string `json:"branch"`
}

// Current returns the metadata baked into this binary.
func Current() Info {
	return Info{Version: Version, Commit: Commit, Branch: Branch}
}

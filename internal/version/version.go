// Package version provides version information for the boon CLI.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/boonbuild/boon/internal/love"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version" yaml:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate" yaml:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion" yaml:"goVersion"`

	// DefaultLove is the LÖVE version builds target unless configured.
	DefaultLove string `json:"defaultLove" yaml:"defaultLove"`

	// SupportedLove lists every LÖVE version that can be downloaded and built.
	SupportedLove []string `json:"supportedLove" yaml:"supportedLove"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		DefaultLove:   love.DefaultVersion.String(),
		SupportedLove: love.VersionStrings(),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("boon %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  LÖVE:      %s (default %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, strings.Join(i.SupportedLove, ", "), i.DefaultLove)
}


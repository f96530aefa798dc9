// Package love describes the LÖVE runtimes boon can package against and
// manages the local cache they are downloaded into.
package love

import (
	"fmt"
	"strings"

	oerrors "github.com/boonbuild/boon/internal/errors"
)

// Version is a released LÖVE version, e.g. "11.3".
type Version string

// Supported LÖVE versions.
const (
	V11_5   Version = "11.5"
	V11_4   Version = "11.4"
	V11_3   Version = "11.3"
	V11_2   Version = "11.2"
	V11_1   Version = "11.1"
	V11_0   Version = "11.0"
	V0_10_2 Version = "0.10.2"
)

// DefaultVersion is used when no version is requested.
const DefaultVersion = V11_3

var versions = []Version{V11_5, V11_4, V11_3, V11_2, V11_1, V11_0, V0_10_2}

// Versions returns all supported versions, newest first.
func Versions() []Version {
	out := make([]Version, len(versions))
	copy(out, versions)
	return out
}

// VersionStrings returns all supported versions as strings, newest first.
func VersionStrings() []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = string(v)
	}
	return out
}

// ParseVersion parses a version string such as "11.3".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	for _, v := range versions {
		if string(v) == s {
			return v, nil
		}
	}
	return "", oerrors.NewValidationError(
		fmt.Sprintf("%q is not a valid love version", s),
		"",
		"Supported versions: "+strings.Join(VersionStrings(), ", "),
	)
}

// String returns the version string.
func (v Version) String() string {
	return string(v)
}

// Platform is an operating system a runtime targets.
type Platform int

const (
	Windows Platform = iota
	MacOS
)

// String returns the display name of the platform.
func (p Platform) String() string {
	switch p {
	case Windows:
		return "Windows"
	case MacOS:
		return "macOS"
	default:
		return fmt.Sprintf("Platform(%d)", int(p))
	}
}

// Bitness is a CPU architecture width.
type Bitness int

const (
	X86 Bitness = iota // 32 bit
	X64                // 64 bit
)

// String returns "x86" or "x64".
func (b Bitness) String() string {
	switch b {
	case X86:
		return "x86"
	case X64:
		return "x64"
	default:
		return fmt.Sprintf("Bitness(%d)", int(b))
	}
}

// Suffix returns the Windows distribution suffix, "win32" or "win64".
func (b Bitness) Suffix() string {
	if b == X86 {
		return "win32"
	}
	return "win64"
}

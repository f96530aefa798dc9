package love

import (
	"fmt"

	oerrors "github.com/boonbuild/boon/internal/errors"
)

// DefaultMirror is the base URL release archives are downloaded from.
const DefaultMirror = "https://github.com/love2d/love/releases/download"

// Key identifies one runtime build.
type Key struct {
	Version  Version
	Platform Platform
	Bitness  Bitness
}

// String returns e.g. "LÖVE 11.3 Windows x64".
func (k Key) String() string {
	return fmt.Sprintf("LÖVE %s %s %s", k.Version, k.Platform, k.Bitness)
}

// Release describes where a runtime build is downloaded from and the
// directory its archive extracts to.
type Release struct {
	// Dir is the top-level directory inside the release archive.
	Dir string
	// File is the release archive file name.
	File string
}

// releases is the table of every supported runtime build. Adding a version
// is a matter of adding rows here.
var releases = map[Key]Release{
	{V11_5, Windows, X64}: {Dir: "love-11.5-win64", File: "love-11.5-win64.zip"},
	{V11_5, Windows, X86}: {Dir: "love-11.5-win32", File: "love-11.5-win32.zip"},
	{V11_5, MacOS, X64}:   {Dir: "love.app", File: "love-11.5-macos.zip"},

	{V11_4, Windows, X64}: {Dir: "love-11.4-win64", File: "love-11.4-win64.zip"},
	{V11_4, Windows, X86}: {Dir: "love-11.4-win32", File: "love-11.4-win32.zip"},
	{V11_4, MacOS, X64}:   {Dir: "love.app", File: "love-11.4-macos.zip"},

	{V11_3, Windows, X64}: {Dir: "love-11.3-win64", File: "love-11.3-win64.zip"},
	{V11_3, Windows, X86}: {Dir: "love-11.3-win32", File: "love-11.3-win32.zip"},
	{V11_3, MacOS, X64}:   {Dir: "love.app", File: "love-11.3-macos.zip"},

	{V11_2, Windows, X64}: {Dir: "love-11.2.0-win64", File: "love-11.2-win64.zip"},
	{V11_2, Windows, X86}: {Dir: "love-11.2.0-win32", File: "love-11.2-win32.zip"},
	{V11_2, MacOS, X64}:   {Dir: "love.app", File: "love-11.2-macos.zip"},

	{V11_1, Windows, X64}: {Dir: "love-11.1.0-win64", File: "love-11.1-win64.zip"},
	{V11_1, Windows, X86}: {Dir: "love-11.1.0-win32", File: "love-11.1-win32.zip"},
	{V11_1, MacOS, X64}:   {Dir: "love.app", File: "love-11.1-macos.zip"},

	{V11_0, Windows, X64}: {Dir: "love-11.0.0-win64", File: "love-11.0.0-win64.zip"},
	{V11_0, Windows, X86}: {Dir: "love-11.0.0-win32", File: "love-11.0.0-win32.zip"},
	{V11_0, MacOS, X64}:   {Dir: "love.app", File: "love-11.0.0-macos.zip"},

	{V0_10_2, Windows, X64}: {Dir: "love-0.10.2-win64", File: "love-0.10.2-win64.zip"},
	{V0_10_2, Windows, X86}: {Dir: "love-0.10.2-win32", File: "love-0.10.2-win32.zip"},
	{V0_10_2, MacOS, X64}:   {Dir: "love.app", File: "love-0.10.2-macosx-x64.zip"},
}

// Lookup returns the release for a version/platform/bitness combination.
// Combinations missing from the table return an error wrapping ErrUnsupported.
func Lookup(version Version, platform Platform, bitness Bitness) (Release, error) {
	key := Key{Version: version, Platform: platform, Bitness: bitness}
	rel, ok := releases[key]
	if !ok {
		return Release{}, fmt.Errorf("%s: %w", key, oerrors.ErrUnsupported)
	}
	return rel, nil
}

// Targets returns every platform/bitness pair available for a version.
func Targets(version Version) []Key {
	var keys []Key
	for _, p := range []Platform{Windows, MacOS} {
		for _, b := range []Bitness{X86, X64} {
			k := Key{Version: version, Platform: p, Bitness: b}
			if _, ok := releases[k]; ok {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// URL returns the download URL of the release archive under mirror.
func (r Release) URL(mirror string, version Version) string {
	if mirror == "" {
		mirror = DefaultMirror
	}
	return fmt.Sprintf("%s/%s/%s", mirror, version, r.File)
}

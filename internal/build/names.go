package build

import (
	"github.com/flytam/filenamify"

	"github.com/boonbuild/boon/internal/config"
	"github.com/boonbuild/boon/internal/love"
)

// safeName turns a project title into a file name that is valid on every
// platform. Reserved characters become underscores.
func safeName(name string) string {
	safe, err := filenamify.FilenamifyV2(name, func(o *filenamify.Options) {
		o.Replacement = "_"
	})
	if err != nil || safe == "" {
		return "_"
	}
	return safe
}

// ArchiveFileName is the .love archive name, shared by every platform.
func ArchiveFileName(project config.Project) string {
	return safeName(project.Title) + ".love"
}

// ExeFileName is the fused Windows executable name.
func ExeFileName(project config.Project) string {
	return safeName(project.PackageName) + ".exe"
}

// WindowsDirName is the Windows staging directory name, e.g. "Game-win64".
func WindowsDirName(project config.Project, bitness love.Bitness) string {
	return safeName(project.Title) + "-" + bitness.Suffix()
}

// WindowsZipFileName is the Windows distributable name, e.g. "Game-win64.zip".
func WindowsZipFileName(project config.Project, bitness love.Bitness) string {
	return WindowsDirName(project, bitness) + ".zip"
}

// AppFileName is the macOS bundle name.
func AppFileName(project config.Project) string {
	return safeName(project.Title) + ".app"
}

func partialAppFileName(project config.Project) string {
	return "." + AppFileName(project) + ".partial"
}

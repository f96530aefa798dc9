// Package testutil provides test helpers for writing project and runtime
// fixture trees.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes every file of tree (forward-slash relative path to
// content) below dir.
func WriteTree(t *testing.T, dir string, tree map[string]string) {
	t.Helper()
	for name, content := range tree {
		WriteFile(t, dir, name, content)
	}
}

// NewProject creates a project directory holding main.lua plus tree.
func NewProject(t *testing.T, tree map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, "main.lua", "function love.draw() end\n")
	WriteTree(t, dir, tree)
	return dir
}

// LoveExe is the content of the fake love.exe written by NewWindowsRuntime.
const LoveExe = "MZ-fake-love-runtime"

// NewWindowsRuntime writes a fake Windows runtime directory and returns its
// path.
func NewWindowsRuntime(t *testing.T, dir string) string {
	t.Helper()
	WriteTree(t, dir, map[string]string{
		"love.exe":    LoveExe,
		"SDL2.dll":    "sdl",
		"lua51.dll":   "lua",
		"license.txt": "zlib",
		"game.ico":    "icon",
		"readme.md":   "not copied",
		"lovec.exe":   "not copied",
	})
	return dir
}

// InfoPlist is a trimmed love.app Info.plist in Apple's tab-indented layout.
const InfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>BuildMachineOSBuild</key>
	<string>19B88</string>
	<key>CFBundleDevelopmentRegion</key>
	<string>English</string>
	<key>CFBundleExecutable</key>
	<string>love</string>
	<key>CFBundleIconFile</key>
	<string>OS X AppIcon</string>
	<key>CFBundleIdentifier</key>
	<string>org.love2d.love</string>
	<key>CFBundleInfoDictionaryVersion</key>
	<string>6.0</string>
	<key>CFBundleName</key>
	<string>LÖVE</string>
	<key>CFBundlePackageType</key>
	<string>APPL</string>
	<key>CFBundleShortVersionString</key>
	<string>11.3</string>
	<key>LSApplicationCategoryType</key>
	<string>public.app-category.games</string>
	<key>NSHighResolutionCapable</key>
	<true/>
	<key>UTExportedTypeDeclarations</key>
	<array>
		<dict>
			<key>UTTypeConformsTo</key>
			<array>
				<string>com.pkware.zip-archive</string>
			</array>
			<key>UTTypeDescription</key>
			<string>LÖVE Project</string>
			<key>UTTypeIdentifier</key>
			<string>org.love2d.love-game</string>
			<key>UTTypeTagSpecification</key>
			<dict>
				<key>public.filename-extension</key>
				<array>
					<string>love</string>
				</array>
			</dict>
		</dict>
	</array>
	<key>NSPrincipalClass</key>
	<string>NSApplication</string>
</dict>
</plist>
`

// NewMacRuntime writes a fake love.app bundle below dir and returns the
// bundle path.
func NewMacRuntime(t *testing.T, dir string) string {
	t.Helper()
	app := filepath.Join(dir, "love.app")
	WriteTree(t, app, map[string]string{
		"Contents/Info.plist":                                  InfoPlist,
		"Contents/MacOS/love":                                  "mach-o",
		"Contents/Resources/GameIcon.icns":                     "icns",
		"Contents/Frameworks/Lua.framework/Versions/A/Lua":     "lua",
		"Contents/Frameworks/Lua.framework/Versions/A/Headers": "h",
	})
	link := filepath.Join(app, "Contents", "Frameworks", "Lua.framework", "Lua")
	if err := os.Symlink("Versions/A/Lua", link); err != nil {
		t.Fatalf("failed to create symlink %s: %v", link, err)
	}
	return app
}

// ReadZip returns the entries of a zip archive by name.
func ReadZip(t *testing.T, path string) map[string][]byte {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open zip %s: %v", path, err)
	}
	defer r.Close()

	entries := make(map[string][]byte, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = data
	}
	return entries
}

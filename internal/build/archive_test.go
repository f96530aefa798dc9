package build

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
	"github.com/boonbuild/boon/internal/testutil"
)

func entryNames(t *testing.T, path string) []string {
	t.Helper()
	entries, err := ListArchive(path)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestBuildArchive(t *testing.T) {
	src := testutil.NewProject(t, map[string]string{
		"conf.lua":              "function love.conf(t) end",
		"assets/sprites/a.png":  "png-a",
		"assets/sprites/b.png":  "png-b",
		".git/HEAD":             "ref: refs/heads/main",
		"assets/.DS_Store":      "junk",
		"lib/vendor/readme.txt": "vendored",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0o755))

	filter, err := CompileFilter([]string{`^\.git/`, `(^|/)\.DS_Store$`})
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "Game.love")
	stats, err := BuildArchive(src, dst, filter)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"assets/sprites/a.png",
		"assets/sprites/b.png",
		"conf.lua",
		"lib/vendor/readme.txt",
		"main.lua",
	}, entryNames(t, dst), "lexical order, no directories, no exclusions")

	files := testutil.ReadZip(t, dst)
	assert.Equal(t, "png-b", string(files["assets/sprites/b.png"]))
	assert.Equal(t, "function love.draw() end\n", string(files["main.lua"]))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, "LÖVE", stats.Name)
	assert.Equal(t, "Game.love", stats.FileName)
	assert.Equal(t, info.Size(), stats.Size)
	assert.Positive(t, stats.Time)
}

func TestBuildArchiveEntryAttributes(t *testing.T) {
	src := testutil.NewProject(t, nil)
	require.NoError(t, os.Chmod(filepath.Join(src, "main.lua"), 0o755))

	dst := filepath.Join(t.TempDir(), "Game.love")
	_, err := BuildArchive(src, dst, nil)
	require.NoError(t, err)

	r, err := zip.OpenReader(dst)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 1)
	f := r.File[0]
	assert.Equal(t, zip.Deflate, f.Method)
	assert.Equal(t, os.FileMode(0o644), f.Mode().Perm())
	assert.True(t, f.Modified.Equal(entryModTime))

	entries, err := ListArchive(dst)
	require.NoError(t, err)
	assert.Equal(t, []ArchiveEntry{{Name: "main.lua", Size: 25, Mode: 0o644}}, entries)
}

func TestBuildArchiveDeterministic(t *testing.T) {
	src := testutil.NewProject(t, map[string]string{
		"a/b/c.lua": "return 1",
		"d.lua":     "return 2",
	})
	out := t.TempDir()

	first := filepath.Join(out, "first.love")
	second := filepath.Join(out, "second.love")
	_, err := BuildArchive(src, first, nil)
	require.NoError(t, err)
	_, err = BuildArchive(src, second, nil)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildArchiveSourceNotFound(t *testing.T) {
	out := t.TempDir()
	dst := filepath.Join(out, "Game.love")

	_, err := BuildArchive(filepath.Join(out, "missing"), dst, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrSourceNotFound))

	file := testutil.WriteFile(t, out, "file.txt", "x")
	_, err = BuildArchive(file, dst, nil)
	assert.True(t, errors.Is(err, oerrors.ErrSourceNotFound))

	assert.NoFileExists(t, dst)
}

func TestBuildArchiveLeavesNoPartialFile(t *testing.T) {
	src := testutil.NewProject(t, nil)
	dst := filepath.Join(t.TempDir(), "missing-dir", "Game.love")

	_, err := BuildArchive(src, dst, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrFileSystem))
	assert.NoDirExists(t, filepath.Dir(dst))
}

func TestBuildArchiveReplacesExisting(t *testing.T) {
	src := testutil.NewProject(t, nil)
	out := t.TempDir()
	dst := testutil.WriteFile(t, out, "Game.love", "stale")

	_, err := BuildArchive(src, dst, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.lua"}, entryNames(t, dst))

	leftovers, err := filepath.Glob(filepath.Join(out, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestBuildArchiveSkipsItselfAndPrunedDirs(t *testing.T) {
	src := testutil.NewProject(t, map[string]string{
		"release/old.zip": "old",
		"src/game.lua":    "return {}",
	})
	dst := filepath.Join(src, "release", "Game.love")

	_, err := buildArchive(src, dst, nil, filepath.Join(src, "release"))
	require.NoError(t, err)
	assert.Equal(t, []string{"main.lua", "src/game.lua"}, entryNames(t, dst))

	// Without pruning, only the archive being written is left out.
	_, err = BuildArchive(src, dst, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.lua", "release/old.zip", "src/game.lua"}, entryNames(t, dst))
}

func TestBuildArchiveOutputAtSourceRoot(t *testing.T) {
	src := testutil.NewProject(t, map[string]string{"assets/a.png": "png"})
	dst := filepath.Join(src, "Game.love")

	_, err := buildArchive(src, dst, nil, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/a.png", "main.lua"}, entryNames(t, dst))

	_, err = buildArchive(src, dst, nil, filepath.Dir(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/a.png", "main.lua"}, entryNames(t, dst))
}

func TestBuildArchiveSkipsUnreadableEntries(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	src := testutil.NewProject(t, map[string]string{
		"secret.lua":       "hidden",
		"locked/inner.lua": "hidden",
		"open/ok.lua":      "visible",
	})
	secret := filepath.Join(src, "secret.lua")
	locked := filepath.Join(src, "locked")
	require.NoError(t, os.Chmod(secret, 0o000))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() {
		_ = os.Chmod(secret, 0o644)
		_ = os.Chmod(locked, 0o755)
	})

	var logBuf bytes.Buffer
	output.SetupLogging(output.LogConfig{})
	output.SetLogWriter(&logBuf)

	dst := filepath.Join(t.TempDir(), "Game.love")
	_, err := BuildArchive(src, dst, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"main.lua", "open/ok.lua"}, entryNames(t, dst))
	assert.Contains(t, logBuf.String(), "skipping unreadable file")
	assert.Contains(t, logBuf.String(), "skipping unreadable entry")
	assert.Contains(t, logBuf.String(), "secret.lua")
	assert.Contains(t, logBuf.String(), "locked")
}

func TestBuildArchiveEmptyDirectory(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "empty.love")

	stats, err := BuildArchive(src, dst, nil)
	require.NoError(t, err)
	assert.Empty(t, entryNames(t, dst))
	assert.Positive(t, stats.Size)
}

func TestBuildArchiveFollowsFileSymlinks(t *testing.T) {
	src := testutil.NewProject(t, map[string]string{"real.lua": "real"})
	require.NoError(t, os.Symlink("real.lua", filepath.Join(src, "alias.lua")))
	require.NoError(t, os.Symlink("nowhere", filepath.Join(src, "dangling.lua")))

	dst := filepath.Join(t.TempDir(), "Game.love")
	_, err := BuildArchive(src, dst, nil)
	require.NoError(t, err)

	files := testutil.ReadZip(t, dst)
	assert.Equal(t, "real", string(files["alias.lua"]))
	assert.NotContains(t, files, "dangling.lua")
}

func TestBuildArchiveFromPaths(t *testing.T) {
	base := t.TempDir()
	testutil.WriteTree(t, base, map[string]string{
		"game.exe":     "exe",
		"SDL2.dll":     "dll",
		"docs/a.txt":   "a",
		"ignored.tmp":  "tmp",
		"docs/b.tmp":   "tmp",
		"unlisted.txt": "u",
	})
	filter, err := CompileFilter([]string{`\.tmp$`})
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "out.zip")
	_, err = BuildArchiveFromPaths(base, []string{
		filepath.Join(base, "game.exe"),
		filepath.Join(base, "SDL2.dll"),
		filepath.Join(base, "docs"),
	}, dst, filter)
	require.NoError(t, err)

	names := entryNames(t, dst)
	sort.Strings(names)
	assert.Equal(t, []string{"SDL2.dll", "docs/a.txt", "game.exe"}, names)

	_, err = BuildArchiveFromPaths(base, []string{filepath.Join(base, "nope")}, dst, nil)
	assert.True(t, errors.Is(err, oerrors.ErrSourceNotFound))
}

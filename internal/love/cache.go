package love

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
)

// Location is a resolved runtime directory in the cache together with the
// version/platform/bitness it was resolved for. Resolution does not check
// that the directory exists.
type Location struct {
	Path     string
	Version  Version
	Platform Platform
	Bitness  Bitness
}

// Key returns the version/platform/bitness tuple of the location.
func (l Location) Key() Key {
	return Key{Version: l.Version, Platform: l.Platform, Bitness: l.Bitness}
}

// Cache is the on-disk store of downloaded runtimes, laid out as
// <Root>/<version>/<release dir>.
type Cache struct {
	// Root is the cache directory.
	Root string

	// Mirror is the base download URL. Empty means DefaultMirror.
	Mirror string

	// Quiet suppresses download progress output.
	Quiet bool
}

// NewCache returns a cache rooted at root.
func NewCache(root string) *Cache {
	return &Cache{Root: root}
}

// VersionDir returns the directory holding every runtime of a version.
func (c *Cache) VersionDir(version Version) string {
	return filepath.Join(c.Root, version.String())
}

// Resolve returns the cache location of a runtime. It fails with
// ErrUnsupported for combinations that have no release.
func (c *Cache) Resolve(version Version, platform Platform, bitness Bitness) (Location, error) {
	rel, err := Lookup(version, platform, bitness)
	if err != nil {
		return Location{}, err
	}
	return Location{
		Path:     filepath.Join(c.VersionDir(version), rel.Dir),
		Version:  version,
		Platform: platform,
		Bitness:  bitness,
	}, nil
}

// Installed lists the versions that have a directory in the cache, newest
// first. Directories that do not name a supported version are ignored.
func (c *Cache) Installed() ([]Version, error) {
	entries, err := os.ReadDir(c.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oerrors.FileSystem(err, "reading runtime cache %s", c.Root)
	}

	present := make(map[Version]bool)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := ParseVersion(e.Name())
		if err != nil {
			output.Debug("ignoring unknown cache entry", "name", e.Name())
			continue
		}
		present[v] = true
	}

	var installed []Version
	for _, v := range versions {
		if present[v] {
			installed = append(installed, v)
		}
	}
	return installed, nil
}

// IsInstalled reports whether the runtime for a combination is extracted in the cache.
func (c *Cache) IsInstalled(version Version, platform Platform, bitness Bitness) bool {
	loc, err := c.Resolve(version, platform, bitness)
	if err != nil {
		return false
	}
	_, err = os.Stat(loc.Path)
	return err == nil
}

// Remove deletes every cached runtime of a version.
func (c *Cache) Remove(version Version) error {
	dir := c.VersionDir(version)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return oerrors.NewNotFoundError(
				fmt.Sprintf("version %s is not installed", version),
				dir,
				"List installed versions with `boon love`",
			)
		}
		return oerrors.FileSystem(err, "checking %s", dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return oerrors.FileSystem(err, "removing %s", dir)
	}
	return nil
}

// Contents lists the release directories present for a version, sorted.
func (c *Cache) Contents(version Version) ([]string, error) {
	entries, err := os.ReadDir(c.VersionDir(version))
	if err != nil {
		return nil, oerrors.FileSystem(err, "reading %s", c.VersionDir(version))
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

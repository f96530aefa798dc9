package love

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/schollz/progressbar/v3"

	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
)

var httpClient = &http.Client{
	Timeout: 300 * time.Second,
}

// Download fetches the release archive of a runtime into the cache, unless
// it is already there, and extracts it next to the archive.
func (c *Cache) Download(ctx context.Context, version Version, platform Platform, bitness Bitness) error {
	rel, err := Lookup(version, platform, bitness)
	if err != nil {
		return err
	}

	dir := c.VersionDir(version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return oerrors.FileSystem(err, "creating %s", dir)
	}

	archivePath := filepath.Join(dir, rel.File)
	if _, err := os.Stat(archivePath); err == nil {
		output.Info("archive already downloaded", "file", archivePath)
	} else {
		url := rel.URL(c.Mirror, version)
		output.Info("downloading", "url", url)
		if err := c.fetch(ctx, url, archivePath); err != nil {
			return err
		}
	}

	output.Debug("extracting", "archive", archivePath, "dest", dir)
	if err := Extract(archivePath, dir); err != nil {
		return fmt.Errorf("extracting %s: %w", archivePath, err)
	}
	return nil
}

// fetch downloads url into dest through a temporary file so an interrupted
// download never looks complete.
func (c *Cache) fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", url, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return oerrors.FileSystem(err, "creating %s", tmp)
	}

	var bar *progressbar.ProgressBar
	if c.Quiet || !output.IsTTY() {
		bar = progressbar.DefaultBytesSilent(resp.ContentLength, filepath.Base(dest))
	} else {
		bar = progressbar.DefaultBytes(resp.ContentLength, filepath.Base(dest))
	}

	_, copyErr := io.Copy(io.MultiWriter(f, bar), resp.Body)
	closeErr := f.Close()
	_ = bar.Finish()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp)
		if copyErr != nil {
			return fmt.Errorf("downloading %s: %w", url, copyErr)
		}
		return oerrors.FileSystem(closeErr, "writing %s", tmp)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return oerrors.FileSystem(err, "renaming %s", tmp)
	}
	return nil
}

// Extract unpacks a zip archive into dest, restoring Unix modes and
// symbolic links. Entries that would escape dest, directly or through a
// symbolic link, are rejected.
func Extract(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	dest, err = filepath.Abs(dest)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	realDest, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return err
	}

	for _, f := range r.File {
		fpath := filepath.Join(dest, f.Name)
		if !strings.HasPrefix(fpath, dest+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path in archive: %s", f.Name)
		}
		if err := checkResolved(dest, realDest, fpath); err != nil {
			return fmt.Errorf("illegal file path in archive: %s: %w", f.Name, err)
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(fpath, 0o755); err != nil {
				return err
			}
			continue
		case mode&os.ModeSymlink != 0:
			if err := extractSymlink(f, dest, fpath); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, fpath, mode.Perm()); err != nil {
			return err
		}
	}
	return nil
}

// within reports whether path is dest or lies below it.
func within(dest, path string) bool {
	rel, err := filepath.Rel(dest, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// checkResolved resolves the deepest existing ancestor of path, following
// symbolic links already extracted, and requires it to stay inside dest.
// Directories created below that ancestor contain no links.
func checkResolved(dest, realDest, path string) error {
	dir := filepath.Dir(path)
	for within(dest, dir) {
		if _, err := os.Lstat(dir); err == nil {
			resolved, err := filepath.EvalSymlinks(dir)
			if err != nil {
				return err
			}
			if !within(realDest, resolved) {
				return fmt.Errorf("%s resolves outside the destination", dir)
			}
			return nil
		}
		dir = filepath.Dir(dir)
	}
	return fmt.Errorf("%s is outside the destination", path)
}

func extractFile(f *zip.File, fpath string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	// Never write through a link left by an earlier entry.
	if info, err := os.Lstat(fpath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(fpath); err != nil {
			return err
		}
	}
	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		out.Close()
		return err
	}

	_, err = io.Copy(out, rc)
	rc.Close()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return os.Chmod(fpath, perm)
}

func extractSymlink(f *zip.File, dest, fpath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	target, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return err
	}

	link := string(target)
	if filepath.IsAbs(link) || !within(dest, filepath.Join(filepath.Dir(fpath), link)) {
		return fmt.Errorf("illegal symlink in archive: %s -> %s", f.Name, link)
	}

	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return err
	}
	_ = os.Remove(fpath)
	return os.Symlink(link, fpath)
}

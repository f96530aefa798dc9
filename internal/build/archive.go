package build

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
)

// entryMode is the permission every archive entry is stored with.
const entryMode fs.FileMode = 0o644

// copyBufferSize bounds the memory used to stream file contents.
const copyBufferSize = 64 * 1024

// entryModTime is stored on every entry so identical trees produce
// identical archives.
var entryModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// deflatePool reuses flate writers across entries and archives.
type deflatePool struct {
	pool sync.Pool
}

var deflaters deflatePool

func (p *deflatePool) get(dst io.Writer) *flate.Writer {
	if w := p.pool.Get(); w != nil {
		fw := w.(*flate.Writer)
		fw.Reset(dst)
		return fw
	}
	fw, _ := flate.NewWriter(dst, flate.DefaultCompression)
	return fw
}

// pooledDeflater returns its writer to the pool once the entry is closed.
type pooledDeflater struct {
	*flate.Writer
}

func (d pooledDeflater) Close() error {
	err := d.Writer.Close()
	deflaters.pool.Put(d.Writer)
	return err
}

func newZipWriter(w io.Writer) *zip.Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return pooledDeflater{deflaters.get(out)}, nil
	})
	return zw
}

// archiveJob describes one archive to write.
type archiveJob struct {
	// base is the directory entry names are relative to.
	base string
	// roots are walked in order; each is a file or a directory.
	roots []string
	dst   string
	// filter may be nil.
	filter *Filter
	// skip holds absolute paths that are never archived; directories are
	// pruned.
	skip map[string]bool
}

// BuildArchive zips every regular file under srcDir into dstFile, deflated,
// with entry names relative to srcDir. Paths matched by filter are skipped.
// dstFile is replaced only after the archive is complete.
func BuildArchive(srcDir, dstFile string, filter *Filter) (*Statistics, error) {
	return buildArchive(srcDir, dstFile, filter)
}

// buildArchive is BuildArchive with extra directories pruned from the walk.
func buildArchive(srcDir, dstFile string, filter *Filter, prune ...string) (*Statistics, error) {
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", oerrors.ErrSourceNotFound, srcDir)
	}

	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", srcDir, err)
	}
	skip := make(map[string]bool, len(prune))
	for _, p := range prune {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		// Only directories strictly below the source are pruned. An output
		// directory at or above the source still gets dst and the temp file
		// skipped by writeArchive.
		if rel, err := filepath.Rel(absSrc, abs); err != nil || rel == "." || rel == ".." ||
			strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		skip[abs] = true
	}

	stats, err := writeArchive(archiveJob{
		base:   srcDir,
		roots:  []string{srcDir},
		dst:    dstFile,
		filter: filter,
		skip:   skip,
	})
	if err != nil {
		return nil, err
	}
	stats.Name = "LÖVE"
	return stats, nil
}

// BuildArchiveFromPaths zips an explicit list of files and directories into
// dstFile. Directories are expanded recursively; entry names are relative
// to base.
func BuildArchiveFromPaths(base string, paths []string, dstFile string, filter *Filter) (*Statistics, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w: %s", oerrors.ErrSourceNotFound, p)
		}
	}
	return writeArchive(archiveJob{
		base:   base,
		roots:  paths,
		dst:    dstFile,
		filter: filter,
	})
}

func writeArchive(job archiveJob) (stats *Statistics, err error) {
	start := time.Now()

	dir := filepath.Dir(job.dst)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(job.dst)+".*.tmp")
	if err != nil {
		return nil, oerrors.FileSystem(err, "creating %s", job.dst)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	skip := make(map[string]bool, len(job.skip)+2)
	for p := range job.skip {
		skip[p] = true
	}
	for _, p := range []string{job.dst, tmpPath} {
		if abs, absErr := filepath.Abs(p); absErr == nil {
			skip[abs] = true
		}
	}

	aw := &archiveWriter{
		zw:     newZipWriter(tmp),
		buf:    make([]byte, copyBufferSize),
		base:   job.base,
		filter: job.filter,
		skip:   skip,
	}
	for _, root := range job.roots {
		if err = filepath.WalkDir(root, aw.visit(root)); err != nil {
			return nil, err
		}
	}

	if err = aw.zw.Close(); err != nil {
		return nil, oerrors.FileSystem(err, "finishing %s", job.dst)
	}
	if err = tmp.Close(); err != nil {
		return nil, oerrors.FileSystem(err, "closing %s", job.dst)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return nil, oerrors.FileSystem(err, "setting mode of %s", job.dst)
	}
	if err = os.Rename(tmpPath, job.dst); err != nil {
		return nil, oerrors.FileSystem(err, "renaming %s to %s", tmpPath, job.dst)
	}

	info, err := os.Stat(job.dst)
	if err != nil {
		return nil, oerrors.FileSystem(err, "reading %s", job.dst)
	}
	output.Debug("archive written", "file", job.dst, "entries", aw.entries, "skipped", aw.excluded)

	return &Statistics{
		Name:     filepath.Base(job.dst),
		FileName: filepath.Base(job.dst),
		Time:     time.Since(start),
		Size:     info.Size(),
	}, nil
}

type archiveWriter struct {
	zw       *zip.Writer
	buf      []byte
	base     string
	filter   *Filter
	skip     map[string]bool
	entries  int
	excluded int
}

func (a *archiveWriter) visit(root string) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return oerrors.FileSystem(walkErr, "reading %s", root)
			}
			output.Warn("skipping unreadable entry", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if abs, err := filepath.Abs(path); err == nil && a.skip[abs] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(a.base, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if a.filter.Excluded(rel) {
			a.excluded++
			return nil
		}

		if !d.Type().IsRegular() {
			// Symlinks to regular files are archived by content.
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				output.Debug("skipping non-regular entry", "path", rel)
				return nil
			}
		}

		return a.add(path, rel)
	}
}

func (a *archiveWriter) add(path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
			output.Warn("skipping unreadable file", "path", path, "err", err)
			return nil
		}
		return oerrors.FileSystem(err, "opening %s", path)
	}
	defer f.Close()

	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entryModTime,
	}
	hdr.SetMode(entryMode)

	w, err := a.zw.CreateHeader(hdr)
	if err != nil {
		return oerrors.FileSystem(err, "adding %s", name)
	}
	if _, err := io.CopyBuffer(w, f, a.buf); err != nil {
		return oerrors.FileSystem(err, "writing %s", name)
	}
	a.entries++
	return nil
}

// ArchiveEntry is one file stored in an archive.
type ArchiveEntry struct {
	Name string
	Size uint64
	Mode fs.FileMode
}

// ListArchive returns the entries of a zip archive in stored order.
func ListArchive(path string) ([]ArchiveEntry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, oerrors.FileSystem(err, "opening archive %s", path)
	}
	defer r.Close()

	entries := make([]ArchiveEntry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, ArchiveEntry{
			Name: f.Name,
			Size: f.UncompressedSize64,
			Mode: f.Mode().Perm(),
		})
	}
	return entries, nil
}

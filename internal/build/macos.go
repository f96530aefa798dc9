package build

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/otiai10/copy"

	"github.com/boonbuild/boon/internal/config"
	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/love"
	"github.com/boonbuild/boon/internal/output"
)

// CreateMacOS clones the cached love.app into <output>/<title>.app, injects
// the project archive and rewrites Info.plist. The bundle is assembled under
// a hidden working name and only renamed into place once complete.
func CreateMacOS(project config.Project, settings config.BuildSettings, loc love.Location, archivePath string) (stats *Statistics, err error) {
	start := time.Now()
	log := output.ProjectLogger(project.Title)

	if strings.TrimSpace(project.UTI) == "" {
		return nil, oerrors.NewValidationError(
			"project.uti is required for macOS builds",
			project.Directory,
			"Set uti in the [project] table of Boon.toml, e.g. com.example.mygame",
		)
	}

	if info, statErr := os.Stat(loc.Path); statErr != nil || !info.IsDir() {
		return nil, oerrors.NewRuntimeNotFoundError(loc.Path, loc.Version.String())
	}

	outputDir := config.OutputDir(project, settings)
	appPath := filepath.Join(outputDir, AppFileName(project))
	workPath := filepath.Join(outputDir, partialAppFileName(project))

	if err := os.RemoveAll(workPath); err != nil {
		return nil, oerrors.FileSystem(err, "removing %s", workPath)
	}
	defer func() {
		if err != nil {
			_ = os.RemoveAll(workPath)
		}
	}()

	log.Debug("copying runtime bundle", "from", loc.Path, "to", workPath)
	err = copy.Copy(loc.Path, workPath, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Shallow },
	})
	if err != nil {
		return nil, oerrors.FileSystem(err, "copying %s", loc.Path)
	}

	resources := filepath.Join(workPath, "Contents", "Resources")
	if err = os.MkdirAll(resources, 0o755); err != nil {
		return nil, oerrors.FileSystem(err, "creating %s", resources)
	}
	if err = concatFiles(filepath.Join(resources, ArchiveFileName(project)), 0o644, archivePath); err != nil {
		return nil, err
	}

	plistPath := filepath.Join(workPath, "Contents", "Info.plist")
	log.Debug("rewriting", "path", plistPath)
	if err = rewritePlistFile(plistPath, project); err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(appPath); statErr == nil {
		log.Debug("removing existing bundle", "path", appPath)
		if err = os.RemoveAll(appPath); err != nil {
			return nil, oerrors.FileSystem(err, "removing %s", appPath)
		}
	}
	if err = os.Rename(workPath, appPath); err != nil {
		return nil, oerrors.FileSystem(err, "renaming %s to %s", workPath, appPath)
	}

	size, err := dirSize(appPath)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Name:     "macOS " + loc.Bitness.String(),
		FileName: filepath.Base(appPath),
		Time:     time.Since(start),
		Size:     size,
	}, nil
}

func rewritePlistFile(path string, project config.Project) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", oerrors.ErrMetadataRewrite, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return oerrors.FileSystem(err, "reading %s", path)
	}
	out, err := RewriteInfoPlist(data, project)
	if err != nil {
		return fmt.Errorf("rewriting %s: %w", path, err)
	}
	if err := os.Chmod(path, info.Mode().Perm()|0o200); err != nil {
		return oerrors.FileSystem(err, "making %s writable", path)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return oerrors.FileSystem(err, "writing %s", path)
	}
	return nil
}

// dirSize sums the sizes of the regular files below root. Symlinks are not
// followed.
func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, oerrors.FileSystem(err, "measuring %s", root)
	}
	return total, nil
}

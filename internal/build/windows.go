package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/boonbuild/boon/internal/config"
	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/love"
	"github.com/boonbuild/boon/internal/output"
)

// windowsCompanionExts are copied from the runtime next to the executable.
var windowsCompanionExts = []string{".dll", ".txt", ".ico"}

// CreateWindows fuses love.exe with the project archive and packages the
// result together with the runtime's DLLs, licenses and icons into
// <output>/<title>-win32|win64.zip.
func CreateWindows(project config.Project, settings config.BuildSettings, loc love.Location, archivePath string) (*Statistics, error) {
	start := time.Now()
	log := output.ProjectLogger(project.Title)

	loveExe := filepath.Join(loc.Path, "love.exe")
	if info, err := os.Stat(loveExe); err != nil || !info.Mode().IsRegular() {
		return nil, oerrors.NewRuntimeNotFoundError(loveExe, loc.Version.String())
	}

	outputDir := config.OutputDir(project, settings)
	stagingDir := filepath.Join(outputDir, WindowsDirName(project, loc.Bitness))
	zipPath := filepath.Join(outputDir, WindowsZipFileName(project, loc.Bitness))

	if _, err := os.Stat(stagingDir); err == nil {
		log.Debug("removing existing directory", "path", stagingDir)
		if err := os.RemoveAll(stagingDir); err != nil {
			return nil, oerrors.FileSystem(err, "removing %s", stagingDir)
		}
	}
	if err := os.Mkdir(stagingDir, 0o755); err != nil {
		return nil, oerrors.FileSystem(err, "creating %s", stagingDir)
	}
	// The staging directory never outlives the build.
	defer os.RemoveAll(stagingDir)

	exePath := filepath.Join(stagingDir, ExeFileName(project))
	log.Debug("fusing executable", "love", loveExe, "archive", archivePath, "exe", exePath)
	if err := concatFiles(exePath, 0o755, loveExe, archivePath); err != nil {
		return nil, err
	}

	companions, err := windowsCompanions(loc.Path)
	if err != nil {
		return nil, err
	}
	for _, name := range companions {
		src := filepath.Join(loc.Path, name)
		if err := concatFiles(filepath.Join(stagingDir, name), 0o644, src); err != nil {
			return nil, err
		}
	}
	log.Debug("copied runtime files", "count", len(companions))

	stats, err := BuildArchiveFromPaths(stagingDir, []string{stagingDir}, zipPath, nil)
	if err != nil {
		return nil, fmt.Errorf("packaging %s: %w", filepath.Base(zipPath), err)
	}
	if err := os.RemoveAll(stagingDir); err != nil {
		return nil, oerrors.FileSystem(err, "removing %s", stagingDir)
	}

	return &Statistics{
		Name:     "Windows " + loc.Bitness.String(),
		FileName: filepath.Base(zipPath),
		Time:     time.Since(start),
		Size:     stats.Size,
	}, nil
}

// windowsCompanions lists the runtime files copied beside the executable,
// sorted by name.
func windowsCompanions(runtimeDir string) ([]string, error) {
	entries, err := os.ReadDir(runtimeDir)
	if err != nil {
		return nil, oerrors.FileSystem(err, "reading %s", runtimeDir)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range windowsCompanionExts {
			if ext == want {
				names = append(names, e.Name())
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// concatFiles writes the contents of srcs, in order and without separator,
// to dst.
func concatFiles(dst string, perm os.FileMode, srcs ...string) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return oerrors.FileSystem(err, "creating %s", dst)
	}

	buf := make([]byte, copyBufferSize)
	for _, src := range srcs {
		if err := appendFile(out, src, buf); err != nil {
			_ = out.Close()
			return err
		}
	}
	if err := out.Close(); err != nil {
		return oerrors.FileSystem(err, "closing %s", dst)
	}
	return nil
}

func appendFile(out io.Writer, src string, buf []byte) error {
	in, err := os.Open(src)
	if err != nil {
		return oerrors.FileSystem(err, "opening %s", src)
	}
	defer in.Close()
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		return oerrors.FileSystem(err, "copying %s", src)
	}
	return nil
}

package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/boonbuild/boon/internal/config"
	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/love"
	"github.com/boonbuild/boon/internal/output"
)

// RuntimeResolver maps a runtime combination to its cached location.
// Implemented by *love.Cache.
type RuntimeResolver interface {
	Resolve(version love.Version, platform love.Platform, bitness love.Bitness) (love.Location, error)
}

// Pipeline builds the project archive once and fuses it for each target.
type Pipeline struct {
	runtimes RuntimeResolver

	// Parallel fuses targets concurrently once the archive is written.
	Parallel bool

	// Workers caps concurrent fusers in parallel mode. Zero means no cap.
	Workers int
}

// NewPipeline creates a pipeline resolving runtimes through r.
func NewPipeline(r RuntimeResolver) *Pipeline {
	return &Pipeline{runtimes: r}
}

// fuseJob is one resolved platform target.
type fuseJob struct {
	key love.Key
	loc love.Location
}

// Run validates the project layout, writes <output>/<title>.love and fuses
// it for every requested target. The first failure stops the run.
func (p *Pipeline) Run(ctx context.Context, project config.Project, settings config.BuildSettings, targets []config.Target, version love.Version) (*Result, error) {
	log := output.ProjectLogger(project.Title)

	if err := checkLayout(project); err != nil {
		return nil, err
	}

	outputDir := config.OutputDir(project, settings)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, oerrors.FileSystem(err, "creating output directory %s", outputDir)
	}

	filter, err := CompileFilter(settings.IgnoreList)
	if err != nil {
		return nil, err
	}

	// Resolve every runtime before writing anything so an unsupported
	// combination fails fast.
	jobs, err := p.resolve(ExpandTargets(targets), version)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputDir: outputDir}

	archivePath := filepath.Join(outputDir, ArchiveFileName(project))
	log.Debug("building archive", "src", project.Directory, "dst", archivePath, "patterns", filter.Len())
	var archive *Statistics
	err = output.RunWithSpinner("Building "+ArchiveFileName(project), func() error {
		var err error
		archive, err = buildArchive(project.Directory, archivePath, filter, outputDir)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("building archive: %w", err)
	}
	result.Stats = append(result.Stats, *archive)
	log.Info("built", "target", archive.Name, "file", archive.FileName)

	if len(jobs) == 0 {
		return result, nil
	}

	var fused []Statistics
	if p.Parallel && len(jobs) > 1 {
		fused, err = p.fuseParallel(ctx, project, settings, jobs, archivePath)
	} else {
		fused, err = p.fuseSequential(ctx, project, settings, jobs, archivePath)
	}
	if err != nil {
		return nil, err
	}
	result.Stats = append(result.Stats, fused...)
	return result, nil
}

func (p *Pipeline) resolve(keys []love.Key, version love.Version) ([]fuseJob, error) {
	jobs := make([]fuseJob, 0, len(keys))
	for _, k := range keys {
		k.Version = version
		loc, err := p.runtimes.Resolve(k.Version, k.Platform, k.Bitness)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, fuseJob{key: k, loc: loc})
	}
	return jobs, nil
}

func (p *Pipeline) fuseSequential(ctx context.Context, project config.Project, settings config.BuildSettings, jobs []fuseJob, archivePath string) ([]Statistics, error) {
	log := output.ProjectLogger(project.Title)
	stats := make([]Statistics, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var s *Statistics
		err := output.RunWithSpinner("Building "+job.key.String(), func() error {
			var err error
			s, err = fuse(project, settings, job.loc, archivePath)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", job.key, err)
		}
		log.Info("built", "target", s.Name, "file", s.FileName)
		stats = append(stats, *s)
	}
	return stats, nil
}

func (p *Pipeline) fuseParallel(ctx context.Context, project config.Project, settings config.BuildSettings, jobs []fuseJob, archivePath string) ([]Statistics, error) {
	log := output.ProjectLogger(project.Title)
	stats := make([]Statistics, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := fuse(project, settings, job.loc, archivePath)
			if err != nil {
				return fmt.Errorf("building %s: %w", job.key, err)
			}
			log.Info("built", "target", s.Name, "file", s.FileName)
			stats[i] = *s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func fuse(project config.Project, settings config.BuildSettings, loc love.Location, archivePath string) (*Statistics, error) {
	switch loc.Platform {
	case love.Windows:
		return CreateWindows(project, settings, loc, archivePath)
	case love.MacOS:
		return CreateMacOS(project, settings, loc, archivePath)
	default:
		return nil, oerrors.Wrap(oerrors.ErrUnsupported, "platform "+loc.Platform.String())
	}
}

// checkLayout requires main.lua at the project root.
func checkLayout(project config.Project) error {
	mainLua := filepath.Join(project.Directory, "main.lua")
	info, err := os.Stat(mainLua)
	if err != nil || info.IsDir() {
		return oerrors.NewProjectLayoutError("could not find main.lua in project root", project.Directory)
	}
	return nil
}

// ExpandTargets turns requested targets into platform builds in a fixed
// order: Windows x86, Windows x64, then macOS x64. Duplicates collapse and
// the love target adds nothing beyond the archive. Key.Version is left unset.
func ExpandTargets(targets []config.Target) []love.Key {
	var windows, macos bool
	for _, t := range targets {
		switch t {
		case config.TargetWindows:
			windows = true
		case config.TargetMacOS:
			macos = true
		case config.TargetAll:
			windows, macos = true, true
		}
	}

	var keys []love.Key
	if windows {
		keys = append(keys,
			love.Key{Platform: love.Windows, Bitness: love.X86},
			love.Key{Platform: love.Windows, Bitness: love.X64},
		)
	}
	if macos {
		keys = append(keys, love.Key{Platform: love.MacOS, Bitness: love.X64})
	}
	return keys
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boonbuild/boon/internal/build"
	"github.com/boonbuild/boon/internal/cmdtypes"
	"github.com/boonbuild/boon/internal/cmdutil"
	"github.com/boonbuild/boon/internal/config"
	"github.com/boonbuild/boon/internal/love"
	"github.com/boonbuild/boon/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var bf cmdutil.BuildFlags

	c := &cobra.Command{
		Use:   "build [dir]",
		Short: "Package a LÖVE project",
		Long: `Package a LÖVE project into <title>.love and, per target, fuse it
with a cached LÖVE runtime.

Targets:
  love      only the .love archive (always built)
  windows   <title>-win32.zip and <title>-win64.zip
  macos     <title>.app
  all       windows and macos

Runtimes must be downloaded first with 'boon love download <version>'.

Examples:
  # Build the targets listed in Boon.toml
  boon build

  # Build every target of another project with LÖVE 11.4
  boon build ../game -t all -V 11.4

  # Fuse targets concurrently and print the report as JSON
  boon build -t windows -t macos --parallel -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, cfg, cmdutil.ResolveProjectDir(args), &bf)
		},
	}

	bf.AddTo(c)

	return c
}

func runBuild(c *cobra.Command, cfg *cmdtypes.GlobalConfig, dir string, bf *cmdutil.BuildFlags) error {
	format, err := bf.Validate()
	if err != nil {
		return cmdtypes.NewExitError(err)
	}

	projectDir, err := filepath.Abs(dir)
	if err != nil {
		return cmdtypes.NewExitError(fmt.Errorf("resolving %s: %w", dir, err))
	}

	proj, err := cfg.LoadProject(projectDir)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}
	if err := proj.Validate(); err != nil {
		return cmdtypes.NewExitError(err)
	}
	proj.Project.Directory = projectDir

	if c.Flags().Changed("target") {
		targets, err := config.ParseTargets(bf.Targets)
		if err != nil {
			return cmdtypes.NewExitError(err)
		}
		proj.Build.Targets = targets
	}

	versionValue := config.Resolve(config.ResolveOptions{
		Key:          "love.version",
		FlagValue:    bf.LoveVersion,
		ConfigValue:  proj.Love.Version,
		DefaultValue: love.DefaultVersion.String(),
	})
	config.LogResolvedValues(versionValue)
	version, err := love.ParseVersion(versionValue.Value)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}

	cache, err := cfg.OpenCache(proj)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}

	output.Debug("building project",
		"dir", projectDir,
		"targets", proj.Build.Targets,
		"version", version,
		"parallel", bf.Parallel,
	)

	pipeline := build.NewPipeline(cache)
	pipeline.Parallel = bf.Parallel
	pipeline.Workers = bf.Workers

	result, err := pipeline.Run(c.Context(), proj.Project, proj.Build, proj.Build.Targets, version)
	if err != nil {
		return cmdutil.Fail("build failed", err)
	}

	archive := filepath.Join(result.OutputDir, build.ArchiveFileName(proj.Project))
	if entries, err := build.ListArchive(archive); err == nil {
		output.Debug("archive contents", "file", archive, "entries", len(entries))
	}

	if err := output.WriteReport(result.Infos(), output.ReportOptions{
		Format: format,
		Writer: c.OutOrStdout(),
	}); err != nil {
		return cmdtypes.NewExitError(err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boonbuild/boon/internal/cmdtypes"
	"github.com/boonbuild/boon/internal/cmdutil"
	"github.com/boonbuild/boon/internal/config"
	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove the build output directory",
		Long: `Remove the output directory of a project (build.output_directory in
Boon.toml, "release" by default) and everything in it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runClean(c, cfg, cmdutil.ResolveProjectDir(args))
		},
	}
}

func runClean(c *cobra.Command, cfg *cmdtypes.GlobalConfig, dir string) error {
	projectDir, err := filepath.Abs(dir)
	if err != nil {
		return cmdtypes.NewExitError(fmt.Errorf("resolving %s: %w", dir, err))
	}
	proj, err := cfg.LoadProject(projectDir)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}
	proj.Project.Directory = projectDir

	outputDir := config.OutputDir(proj.Project, proj.Build)
	if outputDir == projectDir {
		return cmdtypes.NewExitError(oerrors.NewValidationError(
			"refusing to remove the project directory",
			outputDir,
			"Point build.output_directory at a subdirectory",
		))
	}

	w := c.OutOrStdout()
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		fmt.Fprintf(w, "Nothing to clean, %s does not exist\n", outputDir)
		return nil
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return cmdtypes.NewExitError(oerrors.FileSystem(err, "removing %s", outputDir))
	}

	fmt.Fprintln(w, output.FormatCheckmark("Removed "+outputDir))
	return nil
}

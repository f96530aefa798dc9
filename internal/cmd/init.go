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
	"github.com/boonbuild/boon/internal/love"
	"github.com/boonbuild/boon/internal/output"
)

// NewInitCmd creates the init command.
func NewInitCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	var forceFlag bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a Boon.toml for a project",
		Long: `Create a Boon.toml in a project directory. The title and package name
are derived from the directory name.

Examples:
  # Initialize the current project
  boon init

  # Overwrite an existing Boon.toml
  boon init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInit(c, cmdutil.ResolveProjectDir(args), forceFlag)
		},
	}

	c.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing Boon.toml")

	return c
}

func runInit(c *cobra.Command, dir string, force bool) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return cmdtypes.NewExitError(fmt.Errorf("resolving %s: %w", dir, err))
	}
	if info, err := os.Stat(absDir); err != nil || !info.IsDir() {
		return cmdtypes.NewExitError(oerrors.NewNotFoundError(
			"project directory does not exist",
			absDir,
			"",
		))
	}

	path := filepath.Join(absDir, config.ProjectFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("%s already exists, use --force to overwrite", path),
		}
	}

	content, err := config.InitTemplate(filepath.Base(absDir), love.DefaultVersion.String())
	if err != nil {
		return cmdtypes.NewExitError(fmt.Errorf("rendering %s: %w", config.ProjectFileName, err))
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return cmdtypes.NewExitError(oerrors.FileSystem(err, "writing %s", path))
	}

	output.Debug("wrote project config", "path", path)
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Created "+path))
	return nil
}

// Package cmdutil provides shared command utilities for boon subcommands.
// It centralizes flag groups and error reporting.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boonbuild/boon/internal/config"
	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/love"
	"github.com/boonbuild/boon/internal/output"
)

// BuildFlags holds the flags of commands that package a project.
type BuildFlags struct {
	Targets     []string
	LoveVersion string
	Parallel    bool
	Workers     int
	Output      string
}

// AddTo registers the build flags on the given cobra command.
func (f *BuildFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.Targets, "target", "t", nil,
		fmt.Sprintf("Build target, repeatable (%s)", strings.Join(config.ValidTargets(), ", ")))
	cmd.Flags().StringVarP(&f.LoveVersion, "love-version", "V", "",
		fmt.Sprintf("LÖVE runtime version (%s)", strings.Join(love.VersionStrings(), ", ")))
	cmd.Flags().BoolVar(&f.Parallel, "parallel", false,
		"Fuse platform targets concurrently")
	cmd.Flags().IntVar(&f.Workers, "workers", 0,
		"Maximum concurrent fusers with --parallel (0 = no limit)")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "table",
		fmt.Sprintf("Report format (%s)", strings.Join(output.ValidFormats(), ", ")))
}

// Validate checks the flag values that do not depend on the project and
// returns the report format.
func (f *BuildFlags) Validate() (output.Format, error) {
	format, ok := output.ParseFormat(f.Output)
	if !ok {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("unknown output format %q", f.Output),
			"--output",
			"Valid formats: "+strings.Join(output.ValidFormats(), ", "),
		)
	}
	if f.Workers < 0 {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("--workers must not be negative, got %d", f.Workers),
			"--workers",
			"",
		)
	}
	return format, nil
}

// ResolveProjectDir returns the project directory from command args,
// defaulting to the current directory.
func ResolveProjectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boonbuild/boon/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the boon CLI and the supported LÖVE versions.`,
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
		},
	}
}

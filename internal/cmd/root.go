// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/boonbuild/boon/internal/cmdtypes"
	"github.com/boonbuild/boon/internal/output"
)

// NewRootCmd creates the root command for the boon CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}

	var timestampsFlag bool

	rootCmd := &cobra.Command{
		Use:   "boon",
		Short: "LÖVE build and packaging tool",
		Long: `boon packages LÖVE projects into distributable .love archives,
Windows executables and macOS application bundles, and manages the
LÖVE runtimes used to build them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := output.LogConfig{Verbose: cfg.Verbose}
			if cmd.Flags().Changed("timestamps") {
				logCfg.Timestamps = output.BoolPtr(timestampsFlag)
			}
			output.SetupLogging(logCfg)
			output.SetSpinnerEnabled(!cfg.Verbose)

			output.Debug("initializing CLI",
				"command", cmd.CommandPath(),
				"config", cfg.ConfigFile,
				"cacheDir", cfg.CacheDirFlag,
			)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Path to a Boon.toml used instead of the project's")
	rootCmd.PersistentFlags().StringVar(&cfg.CacheDirFlag, "cache-dir", "", "LÖVE runtime cache directory (env: BOON_CACHE_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewBuildCmd(cfg),
		NewLoveCmd(cfg),
		NewInitCmd(cfg),
		NewCleanCmd(cfg),
		NewVersionCmd(),
	)

	return rootCmd
}

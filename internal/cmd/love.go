package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boonbuild/boon/internal/cmdtypes"
	"github.com/boonbuild/boon/internal/cmdutil"
	"github.com/boonbuild/boon/internal/love"
	"github.com/boonbuild/boon/internal/output"
)

// NewLoveCmd creates the love command group.
func NewLoveCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "love",
		Short: "Manage cached LÖVE runtimes",
		Long: `Manage the LÖVE runtimes used to fuse Windows and macOS builds.

Without a subcommand, lists the installed versions.

Runtimes are cached per user (e.g. ~/.cache/boon). Override the location
with --cache-dir, BOON_CACHE_DIR or love.cache_dir in Boon.toml.

Examples:
  # Show installed versions
  boon love

  # Show every supported version and what is cached for it
  boon love list

  # Fetch every platform build of LÖVE 11.3
  boon love download 11.3`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runLoveInstalled(c, cfg)
		},
	}

	c.AddCommand(
		newLoveListCmd(cfg),
		newLoveDownloadCmd(cfg),
		newLoveRemoveCmd(cfg),
	)

	return c
}

func newLoveListCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List supported LÖVE versions and their cached runtimes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runLoveList(c, cfg)
		},
	}
}

func newLoveDownloadCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "download <version>",
		Short: "Download every platform build of a LÖVE version",
		Long: `Download and extract the Windows x86, Windows x64 and macOS builds of
a LÖVE version into the runtime cache. Archives already in the cache are
not fetched again.

Set love.mirror in Boon.toml to download from somewhere other than the
LÖVE GitHub releases.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runLoveDownload(c, cfg, args[0])
		},
	}
}

func newLoveRemoveCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <version>",
		Aliases: []string{"rm"},
		Short:   "Remove every cached runtime of a LÖVE version",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runLoveRemove(c, cfg, args[0])
		},
	}
}

// openLoveCache opens the runtime cache using the Boon.toml of the current
// directory when there is one. Only an explicit --config must load.
func openLoveCache(cfg *cmdtypes.GlobalConfig) (*love.Cache, error) {
	proj, err := cfg.LoadProject(".")
	if err != nil {
		if cfg.ConfigFile != "" {
			return nil, err
		}
		output.Debug("ignoring project config", "err", err)
		proj = nil
	}
	return cfg.OpenCache(proj)
}

func runLoveInstalled(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	cache, err := openLoveCache(cfg)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}
	installed, err := cache.Installed()
	if err != nil {
		return cmdtypes.NewExitError(err)
	}

	w := c.OutOrStdout()
	if len(installed) == 0 {
		fmt.Fprintln(w, "No LÖVE versions installed. Run `boon love download <version>`.")
		return nil
	}
	for _, v := range installed {
		fmt.Fprintln(w, v)
	}
	return nil
}

func runLoveList(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	cache, err := openLoveCache(cfg)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}

	tbl := output.NewTable("VERSION", "DEFAULT", "CACHED")
	for _, v := range love.Versions() {
		def := ""
		if v == love.DefaultVersion {
			def = "*"
		}

		var cached []string
		for _, k := range love.Targets(v) {
			if cache.IsInstalled(v, k.Platform, k.Bitness) {
				cached = append(cached, fmt.Sprintf("%s %s", k.Platform, k.Bitness))
			}
		}
		status := "-"
		if len(cached) > 0 {
			status = strings.Join(cached, ", ")
		}
		tbl.Row(v.String(), def, status)
	}

	fmt.Fprintln(c.OutOrStdout(), tbl.String())
	return nil
}

func runLoveDownload(c *cobra.Command, cfg *cmdtypes.GlobalConfig, arg string) error {
	version, err := love.ParseVersion(arg)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}
	cache, err := openLoveCache(cfg)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}

	for _, k := range love.Targets(version) {
		if err := c.Context().Err(); err != nil {
			return cmdtypes.NewExitError(err)
		}
		output.Info("fetching runtime", "version", version, "platform", k.Platform, "bitness", k.Bitness)
		if err := cache.Download(c.Context(), version, k.Platform, k.Bitness); err != nil {
			return cmdutil.Fail("download failed", fmt.Errorf("downloading %s: %w", k, err))
		}
		fmt.Fprintln(c.OutOrStdout(), output.FormatStepLine(k.String(), output.StatusInstalled))
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("LÖVE %s installed in %s", version, cache.VersionDir(version))))
	return nil
}

func runLoveRemove(c *cobra.Command, cfg *cmdtypes.GlobalConfig, arg string) error {
	version, err := love.ParseVersion(arg)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}
	cache, err := openLoveCache(cfg)
	if err != nil {
		return cmdtypes.NewExitError(err)
	}
	if dirs, err := cache.Contents(version); err == nil {
		output.Debug("removing runtimes", "version", version, "dirs", dirs)
	}
	if err := cache.Remove(version); err != nil {
		return cmdtypes.NewExitError(err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("LÖVE %s removed", version)))
	return nil
}

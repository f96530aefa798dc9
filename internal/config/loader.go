package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
)

// Environment variable prefix for boon configuration.
const envPrefix = "BOON"

// ProjectFileName is the config file looked up in the project directory.
const ProjectFileName = "Boon.toml"

const (
	keyIgnoreList           = "build.ignore_list"
	keyExcludeDefaultIgnore = "build.exclude_default_ignore_list"
)

//go:embed Boon.toml
var defaultConfig []byte

// DefaultConfig returns the embedded default Boon.toml.
func DefaultConfig() []byte {
	return bytes.Clone(defaultConfig)
}

// DefaultIgnoreList returns the built-in exclusion patterns.
func DefaultIgnoreList() []string {
	v, err := readTOML(bytes.NewReader(defaultConfig))
	if err != nil {
		panic(fmt.Sprintf("embedded Boon.toml is invalid: %v", err))
	}
	return uniqueSorted(v.GetStringSlice(keyIgnoreList))
}

// LoadOptions selects the files a Loader reads.
type LoadOptions struct {
	// ProjectDir is searched for Boon.toml when ConfigFile is empty.
	ProjectDir string

	// ConfigFile is an explicit config path (--config). It must exist.
	ConfigFile string
}

// Loader merges the embedded defaults, the project Boon.toml and BOON_*
// environment variables.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("toml")

	// BOON_BUILD_OUTPUT_DIRECTORY overrides build.output_directory, etc.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads and merges configuration. A missing project Boon.toml is not an
// error; a missing explicit config file is.
func (l *Loader) Load(opts LoadOptions) (*Config, error) {
	if err := l.v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("reading default config: %w", err)
	}

	path, explicit := opts.ConfigFile, opts.ConfigFile != ""
	if !explicit {
		path = filepath.Join(opts.ProjectDir, ProjectFileName)
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	var (
		projectIgnore []string
		file          string
	)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		project, err := readTOML(bytes.NewReader(data))
		if err != nil {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("parsing %s: %v", filepath.Base(path), err),
				path,
				"Check the TOML syntax of the file",
			)
		}
		if err := l.v.MergeConfigMap(project.AllSettings()); err != nil {
			return nil, fmt.Errorf("merging %s: %w", path, err)
		}
		if project.IsSet(keyIgnoreList) {
			projectIgnore = project.GetStringSlice(keyIgnoreList)
		}
		file = path
		output.Debug("loaded project config", "path", path)
	case os.IsNotExist(err) && !explicit:
		output.Debug("no project config, using defaults", "path", path)
	case os.IsNotExist(err):
		return nil, oerrors.NewNotFoundError("config file not found", path, "Check the --config path")
	default:
		return nil, oerrors.FileSystem(err, "reading %s", path)
	}

	// The environment replaces the project list; entries are whitespace separated.
	if _, ok := os.LookupEnv(envKey(keyIgnoreList)); ok {
		projectIgnore = l.v.GetStringSlice(keyIgnoreList)
		output.Debug("ignore list from environment", "env", envKey(keyIgnoreList), "patterns", projectIgnore)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.File = file

	ignore := projectIgnore
	if !l.v.GetBool(keyExcludeDefaultIgnore) {
		ignore = append(ignore, DefaultIgnoreList()...)
	}
	cfg.Build.IgnoreList = uniqueSorted(ignore)

	names := make([]string, len(cfg.Build.Targets))
	for i, t := range cfg.Build.Targets {
		names[i] = string(t)
	}
	if cfg.Build.Targets, err = ParseTargets(names); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envKey returns the environment variable overriding a config key.
func envKey(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func readTOML(r io.Reader) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}
	return v, nil
}

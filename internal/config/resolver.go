package config

import (
	"os"

	"github.com/boonbuild/boon/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// EnvCacheDir overrides the runtime cache directory.
const EnvCacheDir = "BOON_CACHE_DIR"

// ResolveOptions describes every candidate value of one key.
type ResolveOptions struct {
	// Key names the value in debug output.
	Key string
	// FlagValue is the flag value (empty if not set).
	FlagValue string
	// EnvVar is read with os.Getenv when non-empty.
	EnvVar string
	// ConfigValue is the value from Boon.toml (empty if not set).
	ConfigValue string
	// DefaultValue is used when nothing else is set.
	DefaultValue string
}

// ResolvedValue is a resolved value and where it came from.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Resolve applies flag > env > config > default precedence.
func Resolve(opts ResolveOptions) ResolvedValue {
	result := ResolvedValue{
		Key:      opts.Key,
		Shadowed: make(map[ConfigSource]string),
	}

	var envValue string
	if opts.EnvVar != "" {
		envValue = os.Getenv(opts.EnvVar)
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, opts.DefaultValue},
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveCacheDir resolves the runtime cache directory:
// (1) flag, (2) BOON_CACHE_DIR, (3) love.cache_dir, (4) the per-user cache dir.
func ResolveCacheDir(flagValue, configValue string) (ResolvedValue, error) {
	def, err := DefaultCacheDir()
	if err != nil {
		return ResolvedValue{}, err
	}
	r := Resolve(ResolveOptions{
		Key:          "love.cache_dir",
		FlagValue:    flagValue,
		EnvVar:       EnvCacheDir,
		ConfigValue:  configValue,
		DefaultValue: def,
	})
	if r.Value, err = ExpandPath(r.Value); err != nil {
		return ResolvedValue{}, err
	}
	return r, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}

// Package config loads Boon.toml project configuration.
package config

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/boonbuild/boon/internal/errors"
)

// Target is a requested build output.
type Target string

const (
	// TargetLove builds only the .love archive.
	TargetLove Target = "love"
	// TargetWindows builds the .love archive and both Windows distributables.
	TargetWindows Target = "windows"
	// TargetMacOS builds the .love archive and the macOS application bundle.
	TargetMacOS Target = "macos"
	// TargetAll builds every target.
	TargetAll Target = "all"
)

var targets = []Target{TargetLove, TargetWindows, TargetMacOS, TargetAll}

// ValidTargets returns the accepted target names.
func ValidTargets() []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return names
}

// ParseTarget parses a target name case-insensitively.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range targets {
		if t == known {
			return t, nil
		}
	}
	return "", &oerrors.DetailError{
		Type:    "validation failed",
		Message: fmt.Sprintf("unknown target %q", s),
		Hint:    "Valid targets: " + strings.Join(ValidTargets(), ", "),
		Cause:   oerrors.ErrValidation,
	}
}

// ParseTargets parses a list of target names, dropping duplicates while
// keeping the first-seen order.
func ParseTargets(names []string) ([]Target, error) {
	seen := make(map[Target]bool, len(names))
	var out []Target
	for _, n := range names {
		t, err := ParseTarget(n)
		if err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out, nil
}

// Project describes the game being packaged. It is read-only for the
// duration of a build.
type Project struct {
	// Title is the human-readable name used for archive and bundle names.
	Title string `mapstructure:"title" json:"title" yaml:"title"`

	// PackageName names the Windows executable.
	PackageName string `mapstructure:"package_name" json:"packageName" yaml:"packageName"`

	// Directory is the absolute project root. Set by the caller, not the file.
	Directory string `mapstructure:"-" json:"directory" yaml:"directory"`

	// UTI is the reverse-DNS bundle identifier written into Info.plist.
	UTI string `mapstructure:"uti" json:"uti" yaml:"uti"`

	Authors     string `mapstructure:"authors" json:"authors,omitempty" yaml:"authors,omitempty"`
	Description string `mapstructure:"description" json:"description,omitempty" yaml:"description,omitempty"`
	Email       string `mapstructure:"email" json:"email,omitempty" yaml:"email,omitempty"`
	URL         string `mapstructure:"url" json:"url,omitempty" yaml:"url,omitempty"`
	Version     string `mapstructure:"version" json:"version,omitempty" yaml:"version,omitempty"`
}

// BuildSettings controls a single build invocation.
type BuildSettings struct {
	// OutputDirectory is relative to the project directory.
	OutputDirectory string `mapstructure:"output_directory" json:"outputDirectory" yaml:"outputDirectory"`

	// IgnoreList holds unique exclusion regular expressions, sorted.
	IgnoreList []string `mapstructure:"ignore_list" json:"ignoreList" yaml:"ignoreList"`

	// ExcludeDefaultIgnoreList replaces the default ignore list instead of merging with it.
	ExcludeDefaultIgnoreList bool `mapstructure:"exclude_default_ignore_list" json:"excludeDefaultIgnoreList" yaml:"excludeDefaultIgnoreList"`

	// Targets are the requested outputs.
	Targets []Target `mapstructure:"targets" json:"targets" yaml:"targets"`
}

// LoveConfig selects the runtime used for fusing.
type LoveConfig struct {
	// Version is the LÖVE version, e.g. "11.3".
	Version string `mapstructure:"version" json:"version" yaml:"version"`

	// Mirror overrides the release download base URL.
	Mirror string `mapstructure:"mirror" json:"mirror,omitempty" yaml:"mirror,omitempty"`

	// CacheDir overrides the runtime cache directory.
	CacheDir string `mapstructure:"cache_dir" json:"cacheDir,omitempty" yaml:"cacheDir,omitempty"`
}

// Config is the fully merged configuration.
type Config struct {
	Project Project       `mapstructure:"project" json:"project" yaml:"project"`
	Build   BuildSettings `mapstructure:"build" json:"build" yaml:"build"`
	Love    LoveConfig    `mapstructure:"love" json:"love" yaml:"love"`

	// File is the project config file that was merged, empty when only
	// defaults were used.
	File string `mapstructure:"-" json:"file,omitempty" yaml:"file,omitempty"`
}

// Validate checks the fields every build needs.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Project.Title) == "" {
		missing = append(missing, "project.title")
	}
	if strings.TrimSpace(c.Project.PackageName) == "" {
		missing = append(missing, "project.package_name")
	}
	if strings.TrimSpace(c.Build.OutputDirectory) == "" {
		missing = append(missing, "build.output_directory")
	}
	if len(missing) > 0 {
		return oerrors.NewValidationError(
			"missing required keys: "+strings.Join(missing, ", "),
			c.File,
			"Run `boon init` to create a complete Boon.toml",
		)
	}
	return nil
}

// uniqueSorted returns the distinct non-empty strings of in, sorted.
func uniqueSorted(in []string) []string {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

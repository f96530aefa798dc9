package config

import (
	"os"
	"path/filepath"
)

// appName names the per-user cache directory.
const appName = "boon"

// DefaultCacheDir returns the per-user runtime cache directory
// (e.g. ~/.cache/boon on Linux, ~/Library/Caches/boon on macOS).
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// OutputDir returns the absolute output directory of a project.
func OutputDir(project Project, settings BuildSettings) string {
	if filepath.IsAbs(settings.OutputDirectory) {
		return filepath.Clean(settings.OutputDirectory)
	}
	return filepath.Join(project.Directory, settings.OutputDirectory)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}

// Package cmdtypes provides shared types for the cmd package.
package cmdtypes

import (
	"github.com/boonbuild/boon/internal/config"
	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/love"
)

// GlobalConfig holds CLI-wide settings resolved during PersistentPreRunE.
// It is created once by the root command and passed explicitly into every
// sub-command constructor.
type GlobalConfig struct {
	// ConfigFile is the raw --config flag value (empty if not set).
	ConfigFile string

	// CacheDirFlag is the raw --cache-dir flag value (empty if not set).
	CacheDirFlag string

	// Verbose enables debug logging.
	Verbose bool
}

// LoadProject loads Boon.toml for a project directory, honoring --config.
func (g *GlobalConfig) LoadProject(dir string) (*config.Config, error) {
	return config.NewLoader().Load(config.LoadOptions{
		ProjectDir: dir,
		ConfigFile: g.ConfigFile,
	})
}

// OpenCache opens the runtime cache, resolving its location with
// flag > BOON_CACHE_DIR > love.cache_dir > per-user cache dir precedence.
// cfg may be nil when no project config is available.
func (g *GlobalConfig) OpenCache(cfg *config.Config) (*love.Cache, error) {
	var configDir, mirror string
	if cfg != nil {
		configDir, mirror = cfg.Love.CacheDir, cfg.Love.Mirror
	}
	dir, err := config.ResolveCacheDir(g.CacheDirFlag, configDir)
	if err != nil {
		return nil, err
	}
	config.LogResolvedValues(dir)

	cache := love.NewCache(dir.Value)
	cache.Mirror = mirror
	return cache, nil
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitNotFound        = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// NewExitError wraps err with the exit code matching its sentinel.
func NewExitError(err error) *ExitError {
	return &ExitError{Err: err, Code: oerrors.ExitCodeFromError(err)}
}

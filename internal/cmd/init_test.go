package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boonbuild/boon/internal/cmdtypes"
	"github.com/boonbuild/boon/internal/config"
)

func TestNewInitCmd(t *testing.T) {
	c := NewInitCmd(&cmdtypes.GlobalConfig{})

	assert.Equal(t, "init [dir]", c.Use)
	assert.NotEmpty(t, c.Short)
	f := c.Flags().Lookup("force")
	require.NotNil(t, f)
	assert.Equal(t, "false", f.DefValue)
}

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Space Rocks")
	require.NoError(t, os.Mkdir(dir, 0o755))

	out, err := execute(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	cfg, err := config.NewLoader().Load(config.LoadOptions{ProjectDir: dir})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Space Rocks", cfg.Project.Title)
	assert.Equal(t, "space_rocks", cfg.Project.PackageName)
	assert.Equal(t, "11.3", cfg.Love.Version)
	assert.Equal(t, []config.Target{config.TargetLove}, cfg.Build.Targets)
}

func TestInitExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	_, err := execute(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))

	_, err = execute(t, "init", dir, "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[project]")
}

func TestInitMissingDirectory(t *testing.T) {
	_, err := execute(t, "init", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/testutil"
)

func TestClean(t *testing.T) {
	withCache(t)
	dir := testutil.NewProject(t, map[string]string{"Boon.toml": testBoonToml})

	_, err := execute(t, "build", dir)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "dist", "Test Game.love"))

	out, err := execute(t, "clean", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
	assert.NoDirExists(t, filepath.Join(dir, "dist"))
	assert.FileExists(t, filepath.Join(dir, "main.lua"))

	out, err = execute(t, "clean", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to clean")
}

func TestCleanRefusesProjectDirectory(t *testing.T) {
	dir := testutil.NewProject(t, map[string]string{
		"Boon.toml": "[build]\noutput_directory = \".\"\n",
	})

	_, err := execute(t, "clean", dir)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
	assert.FileExists(t, filepath.Join(dir, "main.lua"))
}

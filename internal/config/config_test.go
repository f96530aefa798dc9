package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boonbuild/boon/internal/errors"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		input   string
		want    Target
		wantErr bool
	}{
		{input: "love", want: TargetLove},
		{input: "Windows", want: TargetWindows},
		{input: " macos ", want: TargetMacOS},
		{input: "ALL", want: TargetAll},
		{input: "linux", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTarget(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, oerrors.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTargetsDedupes(t *testing.T) {
	got, err := ParseTargets([]string{"windows", "love", "WINDOWS", "macos"})
	require.NoError(t, err)
	assert.Equal(t, []Target{TargetWindows, TargetLove, TargetMacOS}, got)

	_, err = ParseTargets([]string{"love", "ios"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Project: Project{Title: "Game", PackageName: "game"},
		Build:   BuildSettings{OutputDirectory: "release"},
	}
	assert.NoError(t, valid.Validate())

	missing := Config{File: "/p/Boon.toml"}
	err := missing.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
	assert.Contains(t, err.Error(), "project.title")
	assert.Contains(t, err.Error(), "project.package_name")
	assert.Contains(t, err.Error(), "build.output_directory")
}

func TestUniqueSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, uniqueSorted([]string{"c", "a", "", "b", "a"}))
	assert.Empty(t, uniqueSorted(nil))
}

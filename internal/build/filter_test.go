package build

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boonbuild/boon/internal/errors"
)

func TestCompileFilterInvalidPattern(t *testing.T) {
	_, err := CompileFilter([]string{`^ok$`, `([unclosed`})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrPattern))
	assert.Contains(t, err.Error(), `([unclosed`)
}

func TestFilterExcluded(t *testing.T) {
	f, err := CompileFilter([]string{`^\.git/`, `(^|/)\.DS_Store$`, `\.psd$`})
	require.NoError(t, err)
	assert.Equal(t, 3, f.Len())

	tests := []struct {
		path     string
		excluded bool
	}{
		{".git/HEAD", true},
		{".gitignore", false},
		{"assets/.DS_Store", true},
		{".DS_Store", true},
		{"art/hero.psd", true},
		{"art/hero.png", false},
		{"main.lua", false},
		{"src/.git/config", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.excluded, f.Excluded(tt.path))
		})
	}
}

func TestFilterEmpty(t *testing.T) {
	var nilFilter *Filter
	assert.False(t, nilFilter.Excluded("anything"))
	assert.Equal(t, 0, nilFilter.Len())

	empty, err := CompileFilter(nil)
	require.NoError(t, err)
	assert.False(t, empty.Excluded("main.lua"))
}

func TestFilterIsSnapshot(t *testing.T) {
	patterns := []string{`^a$`}
	f, err := CompileFilter(patterns)
	require.NoError(t, err)

	patterns[0] = `^b$`
	assert.True(t, f.Excluded("a"))
	assert.False(t, f.Excluded("b"))
}

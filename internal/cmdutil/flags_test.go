package cmdutil

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
)

func TestBuildFlags_AddTo(t *testing.T) {
	var bf BuildFlags
	cmd := &cobra.Command{Use: "test"}
	bf.AddTo(cmd)

	targetFlag := cmd.Flags().Lookup("target")
	require.NotNil(t, targetFlag)
	assert.Equal(t, "t", targetFlag.Shorthand)
	assert.Equal(t, "stringSlice", targetFlag.Value.Type())

	versionFlag := cmd.Flags().Lookup("love-version")
	require.NotNil(t, versionFlag)
	assert.Equal(t, "V", versionFlag.Shorthand)
	assert.Equal(t, "", versionFlag.DefValue)

	outputFlag := cmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "table", outputFlag.DefValue)

	assert.NotNil(t, cmd.Flags().Lookup("parallel"))
	assert.NotNil(t, cmd.Flags().Lookup("workers"))
}

func TestBuildFlags_Validate(t *testing.T) {
	tests := []struct {
		name    string
		flags   BuildFlags
		want    output.Format
		wantErr bool
	}{
		{name: "table", flags: BuildFlags{Output: "table"}, want: output.FormatTable},
		{name: "yml alias", flags: BuildFlags{Output: "yml"}, want: output.FormatYAML},
		{name: "json with workers", flags: BuildFlags{Output: "JSON", Workers: 2}, want: output.FormatJSON},
		{name: "unknown format", flags: BuildFlags{Output: "xml"}, wantErr: true},
		{name: "negative workers", flags: BuildFlags{Output: "table", Workers: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, oerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveProjectDir(t *testing.T) {
	assert.Equal(t, ".", ResolveProjectDir(nil))
	assert.Equal(t, ".", ResolveProjectDir([]string{}))
	assert.Equal(t, "./my-game", ResolveProjectDir([]string{"./my-game"}))
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv("BOON_TEST_VALUE", "from-env")

	result := Resolve(ResolveOptions{
		Key:          "test",
		FlagValue:    "from-flag",
		EnvVar:       "BOON_TEST_VALUE",
		ConfigValue:  "from-config",
		DefaultValue: "from-default",
	})

	assert.Equal(t, "from-flag", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "from-env", result.Shadowed[SourceEnv])
	assert.Equal(t, "from-config", result.Shadowed[SourceConfig])
	assert.Equal(t, "from-default", result.Shadowed[SourceDefault])
}

func TestResolve_EnvPrecedence(t *testing.T) {
	t.Setenv("BOON_TEST_VALUE", "from-env")

	result := Resolve(ResolveOptions{
		EnvVar:      "BOON_TEST_VALUE",
		ConfigValue: "from-config",
	})

	assert.Equal(t, "from-env", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.Equal(t, "from-config", result.Shadowed[SourceConfig])
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolve_ConfigThenDefault(t *testing.T) {
	result := Resolve(ResolveOptions{ConfigValue: "from-config", DefaultValue: "d"})
	assert.Equal(t, "from-config", result.Value)
	assert.Equal(t, SourceConfig, result.Source)

	result = Resolve(ResolveOptions{DefaultValue: "d"})
	assert.Equal(t, "d", result.Value)
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestResolve_NothingSet(t *testing.T) {
	result := Resolve(ResolveOptions{Key: "empty"})
	assert.Empty(t, result.Value)
	assert.Empty(t, result.Source)
}

func TestResolveCacheDir(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "env-cache")
	t.Setenv(EnvCacheDir, envDir)

	r, err := ResolveCacheDir("", "/from/config")
	require.NoError(t, err)
	assert.Equal(t, envDir, r.Value)
	assert.Equal(t, SourceEnv, r.Source)

	r, err = ResolveCacheDir("/from/flag", "/from/config")
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", r.Value)
	assert.Equal(t, SourceFlag, r.Source)

	t.Setenv(EnvCacheDir, "")
	r, err = ResolveCacheDir("", "")
	if err != nil {
		t.Skipf("no user cache dir: %v", err)
	}
	assert.Equal(t, SourceDefault, r.Source)
	assert.Equal(t, "boon", filepath.Base(r.Value))
}

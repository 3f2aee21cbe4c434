package configpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(home, "system"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func TestDefaultPaths(t *testing.T) {
	home := withConfigHome(t)

	assert.Equal(t, filepath.Join(home, "xremap"), DefaultConfigDir())
	assert.Equal(t, filepath.Join(home, "xremap", "xremap.yaml"), DefaultSettingsPath("yml"))
	assert.Equal(t, filepath.Join(home, "xremap", "xremap.toml"), DefaultSettingsPath("toml"))
	assert.Equal(t, filepath.Join(home, "xremap", "xremap.json"), DefaultSettingsPath(""))
	assert.Equal(t, filepath.Join(home, "xremap", "config.yml"), DefaultRulesPath())
}

func TestDefaultRulesPathFindsExisting(t *testing.T) {
	home := withConfigHome(t)
	p := filepath.Join(home, "xremap", "config.toml")
	require.NoError(t, EnsureDir(p))
	require.NoError(t, os.WriteFile(p, []byte("[[windows]]\n"), 0o644))

	assert.Equal(t, p, DefaultRulesPath())
}

func TestConfigCandidatePaths(t *testing.T) {
	home := withConfigHome(t)

	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("/tmp/custom.yml")
	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "/tmp/custom.yml", yamlPaths[0])
	assert.Contains(t, jsonPaths, filepath.Join(home, "xremap", "xremap.json"))
	assert.Contains(t, tomlPaths, filepath.Join(home, "system", "xremap", "xremap.toml"))
	assert.Equal(t, filepath.Join("/etc/xremap", "xremap.toml"), tomlPaths[len(tomlPaths)-1])

	jsonPaths, _, _ = ConfigCandidatePaths("/tmp/settings")
	assert.Equal(t, "/tmp/settings", jsonPaths[0])
}

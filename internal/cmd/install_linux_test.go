//go:build linux

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
)

func TestScope(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	user := scope{}
	assert.Equal(t, filepath.Join(home, "systemd", "user", "xremap.service"), user.unitPath())
	assert.Equal(t, []string{"--user", "enable", "xremap.service"}, user.systemctlArgs("enable", serviceName))
	assert.NoError(t, user.check())
	assert.Error(t, scope{root: true}.check())

	global := scope{global: true, root: true}
	assert.Equal(t, "/etc/systemd/user/xremap.service", global.unitPath())
	assert.Equal(t, []string{"--global", "disable", "xremap.service"}, global.systemctlArgs("disable", serviceName))
	assert.NoError(t, global.check())
	assert.Error(t, scope{global: true}.check())
}

func TestSystemdUnitContent(t *testing.T) {
	unit := systemdUnitContent("/usr/local/bin/xremap", "/home/u/.config/xremap/config.yml")
	assert.Contains(t, unit, `ExecStart="/usr/local/bin/xremap" run "/home/u/.config/xremap/config.yml"`)
	assert.Contains(t, unit, "WantedBy=graphical-session.target")
}

// Package config defines the command line of the xremap binary.
package config

import (
	"github.com/Alia5/xremap/internal/cmd"
	"github.com/Alia5/xremap/internal/log"
)

type CLI struct {
	Config string     `help:"Settings file (JSON, YAML or TOML) with flag values" type:"path" env:"XREMAP_CONFIG"`
	Log    log.Config `embed:"" prefix:"log."`

	Run       cmd.Run           `cmd:"" default:"withargs" help:"Run the remapping daemon"`
	Check     cmd.Check         `cmd:"" help:"Validate a rule file and print a summary"`
	Resolve   cmd.Resolve       `cmd:"" help:"Print the effective remaps for a window class"`
	Settings  cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Install   cmd.Install       `cmd:"" help:"Install a systemd user service"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the systemd user service"`
}

package cmd

import "log/slog"

// Install registers xremap as a systemd user service started with the
// graphical session.
type Install struct {
	Rules  string `arg:"" optional:"" help:"Rule file the service runs with" type:"path"`
	Global bool   `help:"Install for every user in /etc/systemd/user (requires root)"`
}

func (i *Install) Run(logger *slog.Logger) error {
	return install(logger, newScope(i.Global), rulesPath(i.Rules))
}

// Uninstall stops and removes the service installed by Install.
type Uninstall struct {
	Global bool `help:"Remove the unit installed with --global"`
}

func (u *Uninstall) Run(logger *slog.Logger) error {
	return uninstall(logger, newScope(u.Global))
}

//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"golang.org/x/sys/unix"

	"github.com/Alia5/xremap/internal/util"
)

const (
	serviceName   = "xremap.service"
	globalUnitDir = "/etc/systemd/user"
)

type scope struct {
	global bool
	root   bool
}

func newScope(global bool) scope {
	return scope{global: global, root: unix.Getuid() == 0}
}

func (s scope) unitPath() string {
	if s.global {
		return filepath.Join(globalUnitDir, serviceName)
	}
	return filepath.Join(xdg.ConfigHome, "systemd", "user", serviceName)
}

// systemctlArgs prefixes args with the scope flag. Global units can only
// be enabled, not started, for other users.
func (s scope) systemctlArgs(args ...string) []string {
	if s.global {
		return append([]string{"--global"}, args...)
	}
	return append([]string{"--user"}, args...)
}

func (s scope) check() error {
	if s.global && !s.root {
		return errors.New("--global requires root")
	}
	if !s.global && s.root {
		return errors.New("refusing to install a user unit for root; use --global or run as your user")
	}
	return nil
}

func install(logger *slog.Logger, s scope, rules string) error {
	if err := s.check(); err != nil {
		return err
	}
	exePath, err := util.Executable()
	if err != nil {
		return err
	}
	if _, err := loadTable(rules); err != nil {
		return fmt.Errorf("refusing to install with an invalid rule file: %w", err)
	}

	path := s.unitPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(systemdUnitContent(exePath, rules)), 0o644); err != nil {
		return err
	}

	steps := [][]string{{"enable", serviceName}}
	if !s.global {
		steps = [][]string{
			{"daemon-reload"},
			{"enable", serviceName},
			{"restart", serviceName},
		}
	}
	for _, args := range steps {
		if err := runSystemctl(s.systemctlArgs(args...)...); err != nil {
			return err
		}
	}

	logger.Info("xremap systemd user service installed", "path", path, "exe", exePath, "rules", rules)
	return nil
}

func uninstall(logger *slog.Logger, s scope) error {
	if err := s.check(); err != nil {
		return err
	}
	var errs []error
	if !s.global {
		if err := runSystemctl(s.systemctlArgs("stop", serviceName)...); err != nil {
			errs = append(errs, err)
		}
	}
	if err := runSystemctl(s.systemctlArgs("disable", serviceName)...); err != nil {
		errs = append(errs, err)
	}
	path := s.unitPath()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if !s.global {
		if err := runSystemctl(s.systemctlArgs("daemon-reload")...); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("xremap systemd user service removed", "path", path)
	return nil
}

func systemdUnitContent(exePath, rules string) string {
	return fmt.Sprintf(`[Unit]
Description=xremap window-aware key remapper
PartOf=graphical-session.target
After=graphical-session.target

[Service]
Type=simple
ExecStart=%q run %q
Restart=on-failure
RestartSec=2

[Install]
WantedBy=graphical-session.target
`, exePath, rules)
}

func runSystemctl(args ...string) error {
	cmd := exec.Command("systemctl", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

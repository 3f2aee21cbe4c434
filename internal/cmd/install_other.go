//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errUnsupported = errors.New("service installation is only supported on Linux")

type scope struct{}

func newScope(bool) scope { return scope{} }

func install(*slog.Logger, scope, string) error { return errUnsupported }

func uninstall(*slog.Logger, scope) error { return errUnsupported }

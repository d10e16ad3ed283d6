package main

import (
	"github.com/dotlanth/dotlanth/internal/cliconfig"
	"github.com/dotlanth/dotlanth/internal/logging"
)

// AppContext bundles the long-lived services the CLI's subcommands
// share: the operator-facing logger and the resolved CLI config.
type AppContext struct {
	Logger *logging.Logger
	Config cliconfig.Config
}

// LoggerFor derives a child logger scoped to a command name.
func (a *AppContext) LoggerFor(command string) *logging.Logger {
	if a == nil || a.Logger == nil {
		return nil
	}
	return a.Logger.With("command", command)
}

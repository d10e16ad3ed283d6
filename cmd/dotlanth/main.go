package main

import (
	"fmt"
	"os"

	"github.com/dotlanth/dotlanth/internal/cliconfig"
	"github.com/dotlanth/dotlanth/internal/logging"
)

func main() {
	cfg, err := cliconfig.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load cli config: %v\n", err)
		os.Exit(1)
	}

	appLogger, err := logging.New(logging.Options{
		Level:     cfg.LogLevel,
		Component: "cli",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create application logger: %v\n", err)
		os.Exit(1)
	}

	app := &AppContext{Logger: appLogger, Config: cfg}
	flags := &rootFlags{}
	rootCmd := newRootCmd(app, flags)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configPath returns the CLI config file path, defaulting to
// ./dotlanth.yaml when DOTLANTH_CONFIG is unset.
func configPath() string {
	if p := os.Getenv("DOTLANTH_CONFIG"); p != "" {
		return p
	}
	return "./dotlanth.yaml"
}

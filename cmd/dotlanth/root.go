package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	storePath string
	verbose   bool
}

func newRootCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dotlanth",
		Short:         "Run declarative dotDSL service definitions on the dotlanth register VM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.storePath, "store", app.Config.StorePath, "Path to the run store")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd(app, flags))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newDashboardCmd(app, flags))

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotlanth/dotlanth/internal/dotdsl"
)

func newCheckCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.dot>",
		Short: "Parse and validate a dotDSL document without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(app, args[0], cmd)
		},
	}
}

func runCheck(app *AppContext, path string, cmd *cobra.Command) error {
	if _, err := dotdsl.LoadAndValidate(path); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return errCheckFailed
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}

var errCheckFailed = fmt.Errorf("document has diagnostics")

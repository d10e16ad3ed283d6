package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotlanth/dotlanth/internal/dotdsl"
	"github.com/dotlanth/dotlanth/internal/host"
	"github.com/dotlanth/dotlanth/internal/runtimectx"
	"github.com/dotlanth/dotlanth/internal/store"
	"github.com/dotlanth/dotlanth/internal/value"
	"github.com/dotlanth/dotlanth/internal/vm"
)

type runOptions struct {
	maxRequests int64
}

func newRunCmd(app *AppContext, root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run <file.dot>",
		Short: "Load, validate, and run a dotDSL document against a fresh host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(app, root, opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.maxRequests, "max-requests", -1, "Maximum HTTP requests to serve before returning; negative means unlimited")
	return cmd
}

func runRun(app *AppContext, root *rootFlags, opts runOptions, path string, cmd *cobra.Command) error {
	log := app.LoggerFor("run")

	doc, err := dotdsl.LoadAndValidate(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	rc, err := runtimectx.FromDocument(doc)
	if err != nil {
		return fmt.Errorf("build runtime context: %w", err)
	}

	st, err := store.Open(root.storePath)
	if err != nil {
		return fmt.Errorf("open run store %s: %w", root.storePath, err)
	}
	defer st.Close()

	h, err := host.New(rc.Capabilities, st)
	if err != nil {
		return fmt.Errorf("create host: %w", err)
	}

	program, err := buildProgram(h, doc, opts)
	if err != nil {
		_ = st.FinalizeRun(h.RunID(), store.StatusFailed)
		return err
	}

	machine := vm.New(program, app.Config.RegisterCount)
	runErr := machine.Run(h, nil)

	status := store.StatusSucceeded
	if runErr != nil {
		status = store.StatusFailed
	}
	if err := st.FinalizeRun(h.RunID(), status); err != nil {
		if log != nil {
			log.Error(err, "failed to finalize run", "run_id", h.RunID())
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), h.RunID())
	return runErr
}

// buildProgram hand-assembles the fixed-shape bootstrap program for
// doc: dotDSL-to-VM lowering is out of scope (spec §1 Non-goals), so a
// document's only runtime behaviour is "serve the HTTP server it
// declares, if any, then halt."
func buildProgram(h *host.Host, doc *dotdsl.Document, opts runOptions) ([]vm.Instruction, error) {
	if doc.Server == nil {
		return []vm.Instruction{vm.Halt()}, nil
	}

	addr := fmt.Sprintf("127.0.0.1:%d", doc.Server.Port.Value)
	if _, err := h.ConfigureHTTPFromDocument(addr, doc); err != nil {
		return nil, fmt.Errorf("configure http listener: %w", err)
	}

	var args []value.Reg
	var instructions []vm.Instruction
	if opts.maxRequests >= 0 {
		instructions = append(instructions, vm.LoadConst(0, value.NewI64(opts.maxRequests)))
		args = []value.Reg{0}
	}

	instructions = append(instructions, vm.MakeSyscall(2, args, nil), vm.Halt())
	return instructions, nil
}

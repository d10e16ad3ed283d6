package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dotlanth/dotlanth/internal/dashboard"
	"github.com/dotlanth/dotlanth/internal/store"
)

func newDashboardCmd(app *AppContext, root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <run-id>",
		Short: "Tail a run's event log in an interactive dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(app, root, args[0])
		},
	}
}

func runDashboard(app *AppContext, root *rootFlags, runID string) error {
	st, err := store.Open(root.storePath)
	if err != nil {
		return fmt.Errorf("open run store %s: %w", root.storePath, err)
	}
	defer st.Close()

	if _, err := st.GetRun(runID); err != nil {
		return fmt.Errorf("look up run %s: %w", runID, err)
	}

	m := dashboard.NewModel(st, runID)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotlanth/dotlanth/internal/store"
)

func pollRunCmd(st *store.Store, runID string) tea.Cmd {
	return func() tea.Msg {
		run, err := st.GetRun(runID)
		return runPolledMsg{run: run, err: err}
	}
}

func pollLogsCmd(st *store.Store, runID string) tea.Cmd {
	return func() tea.Msg {
		lines, err := st.RunLogs(runID)
		return logsPolledMsg{lines: lines, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

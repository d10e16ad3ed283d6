package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and advances the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case runPolledMsg:
		if msg.err == nil {
			m.run = msg.run
		}
		return m, nil

	case logsPolledMsg:
		if msg.err == nil {
			m.lines = msg.lines
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(pollRunCmd(m.store, m.runID), pollLogsCmd(m.store, m.runID), tickCmd())
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.scrollOff > 0 {
			m.scrollOff--
		}
		return m, nil
	case "down", "j":
		if m.scrollOff < len(m.lines)-1 {
			m.scrollOff++
		}
		return m, nil
	}
	return m, nil
}

package dashboard

import (
	"fmt"
	"strings"

	"github.com/dotlanth/dotlanth/internal/store"
)

// View renders the run's current status and a tail of its event log.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("run %s — %s", m.runID, m.statusLabel())))
	b.WriteString("\n")

	for _, line := range m.visibleLines() {
		b.WriteString(logLineStyle.Render(line.Line))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("↑/↓ scroll · q quit"))
	return b.String()
}

func (m Model) statusLabel() string {
	if m.run == nil {
		return "loading"
	}
	switch m.run.Status {
	case store.StatusRunning:
		return statusRunningStyle.Render("running")
	case store.StatusSucceeded:
		return statusSucceededStyle.Render("succeeded")
	case store.StatusFailed:
		return statusFailedStyle.Render("failed")
	default:
		return string(m.run.Status)
	}
}

// visibleLines returns the window of log lines that fits the
// terminal height, anchored at the current scroll offset.
func (m Model) visibleLines() []store.LogLine {
	maxLines := m.height - 3
	if maxLines < 1 {
		maxLines = 1
	}
	if len(m.lines) <= maxLines {
		return m.lines
	}

	start := m.scrollOff
	if start > len(m.lines)-maxLines {
		start = len(m.lines) - maxLines
	}
	if start < 0 {
		start = 0
	}
	return m.lines[start : start+maxLines]
}

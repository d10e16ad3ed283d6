// Package dashboard implements the read-only terminal UI that tails a
// run's event log from the store. It never touches a running VM or
// host: it only ever calls the store's read path, polling it on a
// timer.
package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotlanth/dotlanth/internal/store"
)

// pollInterval is how often the dashboard re-reads the run and its log
// from the store.
const pollInterval = 500 * time.Millisecond

// Model is the dashboard's bubbletea model for a single run.
type Model struct {
	store *store.Store
	runID string

	run       *store.Run
	lines     []store.LogLine
	err       error
	width     int
	height    int
	scrollOff int
}

// NewModel constructs a dashboard Model that tails runID's event log
// from st. It has no size until the first WindowSizeMsg arrives.
func NewModel(st *store.Store, runID string) Model {
	return Model{
		store: st,
		runID: runID,
	}
}

// Init kicks off the first poll and schedules the recurring tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(pollRunCmd(m.store, m.runID), pollLogsCmd(m.store, m.runID), tickCmd())
}

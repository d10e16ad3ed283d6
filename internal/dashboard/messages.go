package dashboard

import "github.com/dotlanth/dotlanth/internal/store"

// logsPolledMsg carries the run's current log lines after a poll tick.
type logsPolledMsg struct {
	lines []store.LogLine
	err   error
}

// runPolledMsg carries the run's current status after a poll tick.
type runPolledMsg struct {
	run *store.Run
	err error
}

// tickMsg drives the next poll.
type tickMsg struct{}

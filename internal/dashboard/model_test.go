package dashboard

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotlanth/dotlanth/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *store.Run) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "runs.json"))
	require.NoError(t, err)
	run, err := s.CreateRun()
	require.NoError(t, err)
	return s, run
}

func TestNewModelStartsUninitializedUntilSized(t *testing.T) {
	s, run := newTestStore(t)
	m := NewModel(s, run.ID)
	assert.Equal(t, "Initializing...", m.View())
}

func TestUpdateAppliesWindowSize(t *testing.T) {
	s, run := newTestStore(t)
	m := NewModel(s, run.ID)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	next := updated.(Model)
	assert.Equal(t, 80, next.width)
	assert.Equal(t, 24, next.height)
}

func TestUpdateAppliesPolledRunAndLogs(t *testing.T) {
	s, run := newTestStore(t)
	require.NoError(t, s.AppendLog(run.ID, "hello"))

	m := NewModel(s, run.ID)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	updated, _ = m.Update(runPolledMsg{run: run})
	m = updated.(Model)
	require.NotNil(t, m.run)
	assert.Equal(t, store.StatusRunning, m.run.Status)

	lines, err := s.RunLogs(run.ID)
	require.NoError(t, err)
	updated, _ = m.Update(logsPolledMsg{lines: lines})
	m = updated.(Model)
	require.Len(t, m.lines, 1)
	assert.Contains(t, m.View(), "hello")
}

func TestQuitKeyReturnsQuitCommand(t *testing.T) {
	s, run := newTestStore(t)
	m := NewModel(s, run.ID)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(tea.QuitMsg)
	assert.True(t, ok)
}

func TestScrollKeysMoveOffsetWithinBounds(t *testing.T) {
	s, run := newTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendLog(run.ID, "line"))
	}
	m := NewModel(s, run.ID)
	lines, err := s.RunLogs(run.ID)
	require.NoError(t, err)
	updated, _ := m.Update(logsPolledMsg{lines: lines})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 0, m.scrollOff)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.scrollOff)
}

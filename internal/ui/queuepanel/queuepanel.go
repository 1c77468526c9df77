// Package queuepanel renders the play queue and turns list keys into
// queue requests.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/ui"
)

// JumpToTrackMsg is sent when the user selects a track to jump to.
type JumpToTrackMsg struct {
	Index int
}

// DequeueMsg is sent when the user removes the track under the cursor.
type DequeueMsg struct {
	Index int
}

// Model represents the queue panel state. It renders a copy of the queue
// taken from the playback service and never mutates it.
type Model struct {
	tracks  []playlist.Track
	current int
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// New creates an empty queue panel.
func New() Model {
	return Model{current: -1, focused: true}
}

// SetFocused sets whether the panel is focused.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m Model) IsFocused() bool {
	return m.focused
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// SetQueue replaces the displayed queue. The cursor jumps to the current
// track when it changes and is otherwise kept in range.
func (m *Model) SetQueue(tracks []playlist.Track, current int) {
	if current >= 0 && current != m.current {
		m.cursor = current
	}
	m.tracks = tracks
	m.current = current
	m.cursor = min(m.cursor, max(len(tracks)-1, 0))
	m.ensureCursorVisible()
}

// Cursor returns the cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// Update handles messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.offset = 0
	case "G", "end":
		if len(m.tracks) > 0 {
			m.cursor = len(m.tracks) - 1
			m.ensureCursorVisible()
		}
	case "enter":
		if m.cursor < len(m.tracks) {
			idx := m.cursor
			return m, func() tea.Msg { return JumpToTrackMsg{Index: idx} }
		}
	case "d", "delete":
		if m.cursor < len(m.tracks) {
			idx := m.cursor
			return m, func() tea.Msg { return DequeueMsg{Index: idx} }
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.tracks) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.tracks)-1)
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts the scroll offset to keep the cursor and a
// margin of tracks around it in view.
func (m *Model) ensureCursorVisible() {
	height := m.listHeight()
	if height <= 0 {
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)

	if m.cursor-margin < m.offset {
		m.offset = m.cursor - margin
	}
	if m.cursor+margin >= m.offset+height {
		m.offset = m.cursor + margin - height + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.tracks)-height, 0))
}

func (m Model) listHeight() int {
	return m.height - ui.PanelOverhead
}

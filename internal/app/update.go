package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/ui/playerbar"
	"github.com/llehouerou/cadence/internal/ui/queuepanel"
)

// statusHeight is the single status/help line under the player bar.
const statusHeight = 1

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case ServiceEventMsg:
		m.refresh()
		return m, m.WatchServiceEvents()

	case ServiceErrorMsg:
		m.ErrorMsg = errmsg.Format(msg.Operation, msg.Err)
		m.refresh()
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, tea.Quit

	case queuepanel.JumpToTrackMsg:
		m.ErrorMsg = ""
		if err := m.service.JumpTo(msg.Index); err != nil {
			m.ErrorMsg = errmsg.Format(errmsg.OpQueueJump, err)
		}
		m.refresh()
		return m, nil

	case queuepanel.DequeueMsg:
		m.ErrorMsg = ""
		if _, err := m.service.Dequeue(msg.Index); err != nil {
			m.ErrorMsg = errmsg.Format(errmsg.OpQueueRemove, err)
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey applies playback keys and forwards everything else to the queue
// panel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.service.Toggle()
	case "x":
		m.service.Stop()
	case "n":
		m.service.SkipNext()
	case "p":
		m.service.SkipPrevious()
	case "left":
		m.service.Seek(-m.seekStep)
	case "right":
		m.service.Seek(m.seekStep)
	case "+", "=":
		m.service.SetVolume(m.snapshot.Volume + volumeStep)
	case "-":
		m.service.SetVolume(m.snapshot.Volume - volumeStep)
	case "m":
		m.service.ToggleMute()
	case "r":
		m.service.CycleRepeatMode()
	case "s":
		m.service.ToggleShuffle()
	case "c":
		m.service.ClearQueue()
	default:
		var cmd tea.Cmd
		m.QueuePanel, cmd = m.QueuePanel.Update(msg)
		return m, cmd
	}

	m.ErrorMsg = ""
	m.refresh()
	return m, nil
}

func (m *Model) resize() {
	m.QueuePanel.SetSize(m.Width, max(m.Height-playerbar.Height-statusHeight, 0))
}

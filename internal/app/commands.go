package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// WatchServiceEvents returns a command that waits for the next playback
// service event and converts it to a tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case <-sub.StateChanged:
		case <-sub.TrackChanged:
		case <-sub.QueueChanged:
		case <-sub.PositionChanged:
		case <-sub.ModeChanged:
		case <-sub.VolumeChanged:
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
		return ServiceEventMsg{}
	}
}

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/playerbar"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.QueuePanel.View(),
		playerbar.Render(playerbar.NewState(m.snapshot), m.Width),
		m.renderStatus(),
	)
}

// renderStatus shows the last error, or a short key reminder.
func (m Model) renderStatus() string {
	if m.ErrorMsg != "" {
		return styles.T().S().Error.Render(render.Fit(m.ErrorMsg, m.Width))
	}
	return styles.T().S().Subtle.Render(render.Fit(helpLine(), m.Width))
}

// helpLine lists the playback and global keys, first key of each binding.
func helpLine() string {
	var parts []string
	for _, kb := range append(KeysByContext("playback"), KeysByContext("global")...) {
		parts = append(parts, kb.Keys[0]+" "+strings.ToLower(kb.Description))
	}
	return strings.Join(parts, " · ")
}

package queuepanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/ui"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	innerWidth := m.width - ui.BorderHeight
	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderTrackList(innerWidth, m.listHeight())

	return styles.PanelStyle(m.focused).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders "Queue (i/n)" with the total length on the right.
func (m Model) renderHeader(innerWidth int) string {
	left := fmt.Sprintf("Queue (%d/%d)", m.current+1, len(m.tracks))
	if m.current < 0 {
		left = fmt.Sprintf("Queue (-/%d)", len(m.tracks))
	}

	var total time.Duration
	for _, t := range m.tracks {
		total += t.Duration
	}
	right := metaStyle.Render(playlist.FormatDuration(total))

	return render.Row(headerStyle.Render(left), right, innerWidth)
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	if len(m.tracks) == 0 {
		lines := make([]string, max(listHeight, 0))
		if listHeight > 0 {
			lines[0] = dimmedStyle.Render(render.Fit("  Nothing queued", innerWidth))
		}
		for i := 1; i < len(lines); i++ {
			lines[i] = render.Fit("", innerWidth)
		}
		return strings.Join(lines, "\n")
	}

	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.offset
		if idx >= len(m.tracks) {
			lines = append(lines, render.Fit("", innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.tracks[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine renders "▶ title  artist  m:ss".
func (m Model) renderTrackLine(track playlist.Track, idx, width int) string {
	prefix := "  "
	if idx == m.current {
		prefix = playingSymbol + " "
	}

	duration := " " + playlist.FormatDuration(track.Duration)
	contentWidth := max(width-2-len(duration), 0)
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	title := track.Title
	if title == "" {
		title = track.Source
	}
	line := prefix +
		render.Fit(title, titleWidth) +
		render.Fit(track.Artist, artistWidth) +
		duration

	isCursor := idx == m.cursor && m.focused
	return lineStyle(isCursor, idx == m.current, m.current >= 0 && idx < m.current).Render(line)
}

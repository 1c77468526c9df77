// Package playerbar renders the transport line: status, track, progress,
// volume and queue modes.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/ui"
	"github.com/llehouerou/cadence/internal/ui/render"
)

// Height is the rendered height including the border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Status   playback.State
	Title    string
	Artist   string
	Index    int // 0-based; -1 when the queue is empty
	Total    int
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Repeat   playlist.RepeatMode
	Shuffle  bool
}

// NewState extracts the player bar state from a service snapshot.
func NewState(s playback.Snapshot) State {
	st := State{
		Status:   s.State,
		Index:    s.Index,
		Total:    len(s.Tracks),
		Position: s.Position,
		Duration: s.Duration,
		Volume:   s.Volume,
		Repeat:   s.RepeatMode,
		Shuffle:  s.Shuffle,
	}
	if s.Track != nil {
		st.Title = s.Track.Title
		st.Artist = s.Track.Artist
	}
	return st
}

// Render returns the player bar for the given total width.
func Render(s State, width int) string {
	innerWidth := max(width-4, 0) // border + padding

	status := statusSymbol(s.Status)
	timeStr := playlist.FormatDuration(s.Position) + " / " + playlist.FormatDuration(s.Duration)
	right := strings.Join([]string{
		metaStyle().Render(timeStr),
		metaStyle().Render(volumeLabel(s.Volume)),
		modeLabel(s.Repeat, s.Shuffle),
	}, "  ")
	if s.Total > 0 {
		right = metaStyle().Render(fmt.Sprintf("%d/%d", s.Index+1, s.Total)) + "  " + right
	}

	// Track text takes a third of what is left, the progress bar the rest
	remaining := innerWidth - lipgloss.Width(status) - lipgloss.Width(right) - 4
	textWidth := max(remaining/3, 0)
	barWidth := max(remaining-textWidth, ui.MinProgressBarWidth)

	line := status + "  " +
		trackText(s, textWidth) + "  " +
		ProgressBar(s.Position, s.Duration, barWidth)
	line = render.Row(line, right, innerWidth)

	return barStyle().Width(width - 2).Render(line)
}

// ProgressBar renders a bar width cells wide filled by position/duration.
func ProgressBar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	var ratio float64
	if duration > 0 {
		ratio = min(max(float64(position)/float64(duration), 0), 1)
	}
	filled := int(float64(width) * ratio)
	return filledStyle().Render(strings.Repeat("━", filled)) +
		emptyStyle().Render(strings.Repeat("─", width-filled))
}

func trackText(s State, width int) string {
	if s.Title == "" && s.Artist == "" {
		if s.Total == 0 {
			return artistStyle().Render(render.Fit("Queue empty", width))
		}
		return artistStyle().Render(render.Fit("Stopped", width))
	}
	text := s.Title
	if s.Artist != "" {
		text += " · " + s.Artist
	}
	return titleStyle().Render(render.Fit(text, width))
}

func statusSymbol(st playback.State) string {
	switch st {
	case playback.StatePlaying:
		return modeOnStyle().Render(playSymbol)
	case playback.StatePaused:
		return titleStyle().Render(pauseSymbol)
	case playback.StateStopped:
		return metaStyle().Render(stopSymbol)
	}
	return metaStyle().Render(stopSymbol)
}

func volumeLabel(v float64) string {
	if v <= 0 {
		return "vol muted"
	}
	return fmt.Sprintf("vol %3d%%", int(v*100+0.5))
}

func modeLabel(repeat playlist.RepeatMode, shuffle bool) string {
	r := modeOffStyle().Render("repeat")
	switch repeat {
	case playlist.RepeatOne:
		r = modeOnStyle().Render("repeat one")
	case playlist.RepeatAll:
		r = modeOnStyle().Render("repeat all")
	case playlist.RepeatNone:
	}

	sh := modeOffStyle().Render("shuffle")
	if shuffle {
		sh = modeOnStyle().Render("shuffle")
	}
	return r + " " + sh
}

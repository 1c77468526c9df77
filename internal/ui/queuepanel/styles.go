package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/styles"
)

const playingSymbol = "▶"

var (
	headerStyle  = styles.T().S().Title
	metaStyle    = styles.T().S().Muted
	trackStyle   = styles.T().S().Base
	playingStyle = styles.T().S().Playing
	cursorStyle  = styles.T().S().Cursor
	dimmedStyle  = styles.T().S().Subtle
)

// lineStyle returns the style for a track line.
func lineStyle(isCursor, isPlaying, isPlayed bool) lipgloss.Style {
	switch {
	case isCursor && isPlaying:
		return cursorStyle.Inherit(playingStyle)
	case isCursor && isPlayed:
		return cursorStyle.Inherit(dimmedStyle)
	case isCursor:
		return cursorStyle
	case isPlaying:
		return playingStyle
	case isPlayed:
		return dimmedStyle
	default:
		return trackStyle
	}
}

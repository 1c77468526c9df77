package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Padding(0, 1)
}

func titleStyle() lipgloss.Style { return styles.T().S().Title }
func artistStyle() lipgloss.Style { return styles.T().S().Muted }
func metaStyle() lipgloss.Style { return styles.T().S().Subtle }
func filledStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(styles.T().Accent) }
func emptyStyle() lipgloss.Style { return styles.T().S().Subtle }
func modeOnStyle() lipgloss.Style { return styles.T().S().Playing }
func modeOffStyle() lipgloss.Style { return styles.T().S().Subtle }

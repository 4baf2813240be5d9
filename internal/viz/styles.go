package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/collide/internal/attacher"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(48)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func headerStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1)
}

func mutedStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// KindStyle colors a crossing kind.
func KindStyle(t Theme, k attacher.Kind) lipgloss.Style {
	c := t.Muted
	switch k {
	case attacher.Upper:
		c = t.Upper
	case attacher.Intermediate:
		c = t.Intermediate
	case attacher.Lower:
		c = t.Lower
	}
	return lipgloss.NewStyle().Foreground(c).Bold(k == attacher.Lower)
}

// ProgressBar renders fraction in [0, 1] as a bar of width cells.
func ProgressBar(t Theme, fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	return lipgloss.NewStyle().Foreground(t.Accent).Render(strings.Repeat("█", filled)) +
		mutedStyle(t).Render(strings.Repeat("░", width-filled))
}

func Separator(t Theme, width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return mutedStyle(t).Render(left + " ◆ " + right)
}

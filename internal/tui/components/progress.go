package components

import (
	"fmt"

	"github.com/theirongolddev/regimen/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/yellow/orange/red as a goal fills up.
func ColorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Red
	case pct >= 0.9:
		return t.Orange
	case pct >= 0.7:
		return t.Yellow
	default:
		return t.Green
	}
}

// ProgressBar renders a 0-1 ratio as a bar followed by its percentage.
func ProgressBar(pct float64, width int) string {
	return GoalBar("", pct, 0, width)
}

// GoalBar renders a labelled goal bar. The ratio is clamped to [0, 1] and
// colored by how close it is to the goal.
func GoalBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)
	color := ColorForPct(pct)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(barWidth, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	out := ""
	if label != "" {
		out = labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + spaceStyle.Render(" ")
	}
	return out + bar.ViewAs(pct) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

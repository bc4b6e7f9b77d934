package components

import (
	"strings"

	"github.com/theirongolddev/regimen/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. A non-empty message
// replaces the key hints and is shown in the warning color.
func RenderStatusBar(width int, info, message string) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	infoStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	left := hintStyle.Render(" [?]help  [q]uit")
	if message != "" {
		left = warnStyle.Render(" " + message)
	}
	right := ""
	if info != "" {
		right = infoStyle.Render(info + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	gap := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", padding))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(left + gap + right)
}


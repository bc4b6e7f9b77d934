package tui

import (
	"slices"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/tui/components"
	"github.com/theirongolddev/regimen/internal/tui/theme"
	"github.com/theirongolddev/regimen/internal/wizard"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type presenceState struct {
	input  textinput.Model
	cursor int
}

func newPresenceState() presenceState {
	ti := textinput.New()
	ti.Placeholder = "what do you want to research?"
	ti.Prompt = "? "
	ti.CharLimit = 80
	return presenceState{input: ti}
}

func (a App) updatePresenceSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.presence.input.Blur()
		return a, nil
	case "enter":
		a.presence.input.Blur()
		q := strings.TrimSpace(a.presence.input.Value())
		if q == "" {
			return a, nil
		}
		a.presence.cursor = 0
		return a, a.apply(session.ScreenPresence, string(wizard.ActSearch), q)
	}

	var cmd tea.Cmd
	a.presence.input, cmd = a.presence.input.Update(msg)
	return a, cmd
}

func (a App) updatePresence(key string) (App, bool, tea.Cmd) {
	v := a.vm.Presence
	allowed := func(k wizard.ActionKind) bool { return slices.Contains(v.Actions, string(k)) }

	if v.Step == string(wizard.StepTopic) && v.Results != nil {
		if c, ok := moveCursor(a.presence.cursor, len(v.Results.Categories), key); ok {
			a.presence.cursor = c
			return a, true, nil
		}
	}

	switch key {
	case "/":
		if !allowed(wizard.ActSearch) {
			return a, true, nil
		}
		a.presence.input.SetValue("")
		cmd := a.presence.input.Focus()
		return a, true, cmd
	case "enter":
		if !allowed(wizard.ActSelectCategory) || v.Results == nil || a.presence.cursor >= len(v.Results.Categories) {
			return a, true, nil
		}
		id := v.Results.Categories[a.presence.cursor].ID
		return a, true, a.apply(session.ScreenPresence, string(wizard.ActSelectCategory), id)
	case "n":
		if !allowed(wizard.ActNewSearch) {
			return a, true, nil
		}
		return a, true, a.apply(session.ScreenPresence, string(wizard.ActNewSearch), "")
	case "esc":
		if !allowed(wizard.ActBack) {
			return a, true, nil
		}
		return a, true, a.apply(session.ScreenPresence, string(wizard.ActBack), "")
	}
	return a, false, nil
}

func (a App) renderPresenceTab(cw int) string {
	t := theme.Active
	v := a.vm.Presence

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	bulletStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	switch v.Step {
	case string(wizard.StepSearch):
		var b strings.Builder
		b.WriteString(a.presence.input.View())
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Press / to type a topic, enter to search"))
		return components.ContentCard("Research", b.String(), cw)

	case string(wizard.StepTopic):
		if v.Results == nil {
			return ""
		}
		var b strings.Builder
		b.WriteString(textStyle.Render(wrap(v.Results.Overview, innerW)))
		b.WriteString("\n\n")
		for i, cat := range v.Results.Categories {
			line := cat.Title + "  (" + itemCount(len(cat.Items)) + ")"
			b.WriteString(components.ListRow(line, i == a.presence.cursor, innerW) + "\n")
		}
		b.WriteString(mutedStyle.Render("[enter] open  [n] new search"))
		return components.ContentCard("Topic · "+cli.Truncate(v.Results.Topic, innerW-10), b.String(), cw)

	case string(wizard.StepCategory):
		if v.Category == nil {
			return ""
		}
		var b strings.Builder
		for _, item := range v.Category.Items {
			b.WriteString(bulletStyle.Render("• ") + textStyle.Render(cli.Truncate(item, innerW-2)) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("[esc] back  [n] new search"))
		return components.ContentCard(v.Category.Title, b.String(), cw)
	}
	return ""
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return cli.FormatNumber(int64(n)) + " items"
}

// wrap breaks text on spaces so no line is wider than width.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

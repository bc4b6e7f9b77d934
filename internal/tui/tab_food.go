package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/tui/components"
	"github.com/theirongolddev/regimen/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type foodState struct {
	input     textinput.Model
	cursor    int
	logCursor int
	focusLog  bool
}

func newFoodState() foodState {
	ti := textinput.New()
	ti.Placeholder = "search foods"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return foodState{input: ti}
}

// updateFoodSearch feeds keys to the search box and re-runs the search
// whenever the query changes.
func (a App) updateFoodSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		a.food.input.Blur()
		a.food.focusLog = false
		return a, nil
	}

	before := a.food.input.Value()
	var cmd tea.Cmd
	a.food.input, cmd = a.food.input.Update(msg)
	if q := a.food.input.Value(); q != before {
		a.food.cursor = 0
		return a, tea.Batch(cmd, a.apply(session.ScreenFood, "search", q))
	}
	return a, cmd
}

func (a App) updateFood(key string) (App, bool, tea.Cmd) {
	v := a.vm.Food

	if a.food.focusLog {
		if c, ok := moveCursor(a.food.logCursor, len(v.Entries), key); ok {
			a.food.logCursor = c
			return a, true, nil
		}
	} else if c, ok := moveCursor(a.food.cursor, len(v.Results), key); ok {
		a.food.cursor = c
		return a, true, nil
	}

	switch key {
	case "/":
		a.food.focusLog = false
		cmd := a.food.input.Focus()
		return a, true, cmd
	case "tab":
		a.food.focusLog = !a.food.focusLog
		return a, true, nil
	case "enter":
		if a.food.focusLog || a.food.cursor >= len(v.Results) {
			return a, true, nil
		}
		id := v.Results[a.food.cursor].ID
		// the session clears the query on add
		a.food.input.SetValue("")
		a.food.cursor = 0
		return a, true, a.apply(session.ScreenFood, "add", id)
	case "d", "delete", "backspace":
		if !a.food.focusLog || a.food.logCursor >= len(v.Entries) {
			return a, true, nil
		}
		pos := v.Entries[a.food.logCursor].Pos
		return a, true, a.apply(session.ScreenFood, "remove", strconv.Itoa(pos))
	}
	return a, false, nil
}

func (a App) renderFoodTab(cw int) string {
	t := theme.Active
	v := a.vm.Food

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Calories", Value: cli.FormatCalories(v.Progress.Current),
			Delta: "goal " + cli.FormatCalories(v.Progress.Goal)},
		{Label: "Remaining", Value: cli.FormatCalories(v.Progress.Remaining)},
		{Label: "Protein", Value: cli.FormatGrams(v.Totals["protein"])},
		{Label: "Entries", Value: strconv.Itoa(len(v.Entries))},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	b.WriteString(components.ContentCard("Daily Goal",
		components.GoalBar("kcal", v.Progress.Ratio, 5, max(innerW-14, 10)), cw))
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)

	// Search results
	leftW := components.CardInnerWidth(widths[0])
	var results strings.Builder
	results.WriteString(a.food.input.View())
	results.WriteString("\n\n")
	switch {
	case v.Query == "":
		results.WriteString(mutedStyle.Render("Press / to search the catalog"))
	case len(v.Results) == 0:
		results.WriteString(mutedStyle.Render("No foods match " + strconv.Quote(v.Query)))
	}
	for i, item := range v.Results {
		line := fmt.Sprintf("%-20s %8s  %s", cli.Truncate(item.Name, 20),
			cli.FormatCalories(item.Field("calories")), item.Serving)
		results.WriteString(components.ListRow(line, !a.food.focusLog && i == a.food.cursor, leftW) + "\n")
	}
	searchCard := components.ContentCard("Search", strings.TrimRight(results.String(), "\n"), widths[0])

	// Today's log
	rightW := components.CardInnerWidth(widths[1])
	var log strings.Builder
	if len(v.Entries) == 0 {
		log.WriteString(mutedStyle.Render("Nothing logged yet") + "\n")
	}
	for i, e := range v.Entries {
		line := fmt.Sprintf("%s  %-18s %8s", e.Time, cli.Truncate(e.Name, 18), cli.FormatCalories(e.Calories))
		log.WriteString(components.ListRow(line, a.food.focusLog && i == a.food.logCursor, rightW) + "\n")
	}
	if len(v.Entries) > 0 {
		log.WriteString("\n")
		for _, f := range v.Fields {
			log.WriteString(mutedStyle.Render(fmt.Sprintf("%-10s", f)) +
				valueStyle.Render(cli.FormatNutrient(f, v.Totals[f])) + "\n")
		}
	}
	log.WriteString(mutedStyle.Render("[tab] switch list  [d] remove"))
	logCard := components.ContentCard("Today", log.String(), widths[1])

	b.WriteString(components.CardRow([]string{searchCard, logCard}))
	return b.String()
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/model"
	"github.com/theirongolddev/regimen/internal/score"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/tui/components"
	"github.com/theirongolddev/regimen/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dailyState struct {
	cursor int
}

func (a App) updateDaily(key string) (App, bool, tea.Cmd) {
	if c, ok := moveCursor(a.daily.cursor, len(a.vm.Daily.Tasks), key); ok {
		a.daily.cursor = c
		return a, true, nil
	}
	switch key {
	case " ", "enter":
		return a, true, a.apply(session.ScreenDaily, "toggle", strconv.Itoa(a.daily.cursor))
	case "n":
		return a, true, a.apply(session.ScreenDaily, "open-food", "")
	}
	return a, false, nil
}

func (a App) renderDailyTab(cw int) string {
	t := theme.Active
	v := a.vm.Daily

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	ratio := 0.0
	if v.Total > 0 {
		ratio = float64(v.Completed) / float64(v.Total)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Protocol", Value: fmt.Sprintf("%d/%d done", v.Completed, v.Total)},
		{Label: "Overall score", Value: strconv.Itoa(v.Overall), Delta: "average of categories"},
		{Label: "Calories today", Value: cli.FormatCalories(a.vm.Food.Progress.Current),
			Delta: cli.FormatPercent(a.vm.Food.Progress.Ratio) + " of goal"},
	}, cw))
	b.WriteString("\n")

	// Checklist
	innerW := components.CardInnerWidth(cw)
	var tasks strings.Builder
	tasks.WriteString(components.GoalBar("Today", ratio, 6, max(innerW-14, 10)))
	tasks.WriteString("\n\n")
	for i, task := range v.Tasks {
		mark := cli.FormatCheck(task.Completed)
		line := mark + " " + task.Task
		if !a.isCompactLayout() && task.Description != "" {
			line += "  · " + task.Description
		}
		tasks.WriteString(components.ListRow(line, i == a.daily.cursor, innerW))
		tasks.WriteString("\n")
	}
	tasks.WriteString(mutedStyle.Render("[space] toggle  [n] open food tracker"))
	b.WriteString(components.ContentCard("Daily Protocol", tasks.String(), cw))
	b.WriteString("\n")

	// Scores and shortcuts side by side
	widths := components.LayoutRow(cw, 2)
	bars := make([]components.HBar, 0, len(v.Scores))
	scores := scoreMap(v.Scores)
	for _, subject := range score.Ranked(scores) {
		bars = append(bars, components.HBar{Label: subject, Value: float64(scores[subject])})
	}
	scoreCard := components.ContentCard("Category Scores",
		components.HBarChart(bars, 100, components.CardInnerWidth(widths[0])), widths[0])

	var extras strings.Builder
	for _, s := range v.Shortcuts {
		extras.WriteString(doneStyle.Render("› ") + mutedStyle.Render(s) + "\n")
	}
	if len(v.QuitOptions) > 0 {
		extras.WriteString("\n" + mutedStyle.Render("Quit: "+strings.Join(v.QuitOptions, ", ")))
	}
	shortcuts := components.ContentCard("Shortcuts", strings.TrimRight(extras.String(), "\n"), widths[1])

	b.WriteString(components.CardRow([]string{scoreCard, shortcuts}))
	return b.String()
}

func scoreMap(scores []model.CategoryScore) map[string]int {
	m := make(map[string]int, len(scores))
	for _, s := range scores {
		m[s.Subject] = s.Score
	}
	return m
}

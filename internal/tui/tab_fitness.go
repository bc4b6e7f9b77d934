package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/model"
	"github.com/theirongolddev/regimen/internal/pipeline"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/tui/components"
	"github.com/theirongolddev/regimen/internal/tui/theme"
	"github.com/theirongolddev/regimen/internal/view"
	"github.com/theirongolddev/regimen/internal/wizard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fitnessState struct {
	workoutCursor int
	goalCursor    int
}

// primaryActions is what enter does on each step.
var primaryActions = map[string]wizard.ActionKind{
	string(wizard.StepPlan):          wizard.ActOpenWorkout,
	string(wizard.StepUploadCurrent): wizard.ActPhotoUploaded,
	string(wizard.StepUploadGoal):    wizard.ActGoalPhotoUploaded,
	string(wizard.StepGoalOptions):   wizard.ActGoalSelected,
	string(wizard.StepResults):       wizard.ActRescan,
	string(wizard.StepWorkoutDetail): wizard.ActBack,
}

func (a App) updateFitness(key string) (App, bool, tea.Cmd) {
	v := a.vm.Fitness

	switch v.Step {
	case string(wizard.StepPlan):
		if v.Plan != nil {
			if c, ok := moveCursor(a.fitness.workoutCursor, len(v.Plan.Workouts), key); ok {
				a.fitness.workoutCursor = c
				return a, true, nil
			}
			if day, ok := shiftDay(v.Plan, key); ok {
				return a, true, a.apply(session.ScreenFitness, "day", day)
			}
		}
	case string(wizard.StepGoalOptions):
		if c, ok := moveCursor(a.fitness.goalCursor, len(v.Goals), key); ok {
			a.fitness.goalCursor = c
			return a, true, nil
		}
	}

	switch key {
	case "enter":
		kind := primaryActions[v.Step]
		if v.Sub != "" {
			kind = wizard.ActConfirm
		}
		if !slices.Contains(v.Actions, string(kind)) {
			return a, true, nil
		}
		return a, true, a.fitnessAction(kind)
	case "esc":
		for _, kind := range []wizard.ActionKind{wizard.ActCancel, wizard.ActBack} {
			if slices.Contains(v.Actions, string(kind)) {
				return a, true, a.fitnessAction(kind)
			}
		}
		return a, true, nil
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(v.Actions) {
			return a, true, a.fitnessAction(wizard.ActionKind(v.Actions[i]))
		}
		return a, true, nil
	}
	return a, false, nil
}

// fitnessAction fills in the payload from the current selection.
func (a App) fitnessAction(kind wizard.ActionKind) tea.Cmd {
	v := a.vm.Fitness
	payload := ""
	switch kind {
	case wizard.ActGoalSelected:
		if a.fitness.goalCursor < len(v.Goals) {
			payload = v.Goals[a.fitness.goalCursor].ID
		}
	case wizard.ActOpenWorkout:
		if v.Plan != nil && a.fitness.workoutCursor < len(v.Plan.Workouts) {
			payload = v.Plan.Workouts[a.fitness.workoutCursor].Title
		}
	}
	return a.apply(session.ScreenFitness, string(kind), payload)
}

// shiftDay maps [ and ] to the previous and next day of the week plan.
func shiftDay(p *view.FitnessPlan, key string) (string, bool) {
	step := map[string]int{"[": -1, "]": 1}[key]
	if step == 0 || len(p.Week) == 0 {
		return "", false
	}
	i := slices.IndexFunc(p.Week, func(d model.DayPlan) bool { return d.Day == p.Day })
	i = (i + step + len(p.Week)) % len(p.Week)
	return p.Week[i].Day, true
}

func (a App) renderFitnessTab(cw int) string {
	v := a.vm.Fitness

	var body string
	switch v.Step {
	case string(wizard.StepPlan):
		body = a.renderPlan(cw)
	case string(wizard.StepUploadCurrent):
		body = renderUpload(cw, "Body Scan", "Upload a photo of your current physique.",
			v.Inputs[wizard.InputCurrentPhoto] == "true", v.Sub != "")
	case string(wizard.StepUploadGoal):
		body = renderUpload(cw, "Goal Physique", "Upload a photo of the physique you are aiming for, or skip to pick a goal.", false, false)
	case string(wizard.StepGoalOptions):
		body = a.renderGoalOptions(cw)
	case string(wizard.StepResults):
		body = renderResults(v.Results, cw)
	case string(wizard.StepWorkoutDetail):
		body = renderWorkout(v, cw)
	}

	return body + "\n" + renderActions(v.Actions, cw)
}

func (a App) renderPlan(cw int) string {
	t := theme.Active
	p := a.vm.Fitness.Plan
	if p == nil {
		return ""
	}
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dayStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	innerW := components.CardInnerWidth(cw)

	var week strings.Builder
	week.WriteString(components.GoalBar("Week", p.Progress.Ratio(), 5, max(innerW-14, 10)))
	week.WriteString("\n\n")
	for _, d := range p.Week {
		mark := cli.FormatCheck(d.Completed)
		line := fmt.Sprintf("%s %-3s  %-24s %-8s %s", mark, d.Day, cli.Truncate(d.Workout, 24), d.Duration, d.Difficulty)
		if d.Day == p.Day {
			week.WriteString(dayStyle.Render("▸ "+line) + "\n")
		} else {
			week.WriteString(mutedStyle.Render("  "+line) + "\n")
		}
	}
	week.WriteString(mutedStyle.Render("[ ] change day"))

	var workouts strings.Builder
	if len(p.Workouts) == 0 {
		workouts.WriteString(mutedStyle.Render("No workouts for " + p.Day))
	}
	for i, w := range p.Workouts {
		line := fmt.Sprintf("%s  %s  %s", w.Title, w.Duration, strings.Join(w.Tags, " · "))
		workouts.WriteString(components.ListRow(line, i == a.fitness.workoutCursor, innerW) + "\n")
	}

	return components.ContentCard("Weekly Plan", week.String(), cw) + "\n" +
		components.ContentCard("Workouts · "+p.Day, strings.TrimRight(workouts.String(), "\n"), cw)
}

func renderUpload(cw int, title, prompt string, hasPhoto, confirming bool) string {
	t := theme.Active
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(textStyle.Render(prompt))
	b.WriteString("\n\n")
	if hasPhoto {
		b.WriteString(mutedStyle.Render("A photo is already on file."))
		b.WriteString("\n")
	}
	if confirming {
		b.WriteString(warnStyle.Render("Analyze the photo on file?"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("[enter] confirm  [esc] cancel"))
	} else {
		b.WriteString(mutedStyle.Render("[enter] upload"))
	}
	return components.ContentCard(title, b.String(), cw)
}

func (a App) renderGoalOptions(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	for i, g := range a.vm.Fitness.Goals {
		b.WriteString(components.ListRow(g.Label, i == a.fitness.goalCursor, innerW) + "\n")
		b.WriteString(mutedStyle.Render("    "+cli.Truncate(g.Description, innerW-4)) + "\n")
	}
	b.WriteString(mutedStyle.Render("[enter] choose goal"))
	return components.ContentCard("Choose a Goal", b.String(), cw)
}

func renderResults(r *view.FitnessResults, cw int) string {
	if r == nil {
		return ""
	}
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	goal := "From goal photo"
	if r.Goal != nil {
		goal = r.Goal.Label
	} else if !r.GoalPhoto {
		goal = "General fitness"
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Goal", Value: goal},
		{Label: "Diet", Value: cli.FormatCalories(float64(r.DietTotals.Calories)),
			Delta: fmt.Sprintf("%d meals · %s protein", r.DietTotals.Meals, cli.FormatGrams(r.DietTotals.Protein))},
		{Label: "Cost / day", Value: cli.FormatCost(r.Costs.Total()),
			Delta: cli.FormatCost(pipeline.ProjectCost(r.Costs.Total(), 30)) + " / 30 days"},
	}, cw))
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)

	values := make([]float64, len(r.Diet))
	labels := make([]string, len(r.Diet))
	var meals strings.Builder
	for i, m := range r.Diet {
		values[i] = float64(m.Calories)
		labels[i] = m.Meal
		meals.WriteString(textStyle.Render(fmt.Sprintf("%-16s", cli.Truncate(m.Meal, 16))) +
			mutedStyle.Render(fmt.Sprintf(" %-9s %4d kcal %5s %s", m.Time, m.Calories, m.Protein, m.Cost)) + "\n")
	}
	meals.WriteString("\n")
	meals.WriteString(components.BarChart(values, labels, t.Accent, components.CardInnerWidth(widths[0]), 5))
	diet := components.ContentCard("Diet Plan", meals.String(), widths[0])

	var supps strings.Builder
	for _, s := range r.Supplements {
		supps.WriteString(textStyle.Render(s.Name) + mutedStyle.Render(" · "+s.Dosage+" · "+s.Cost) + "\n")
		supps.WriteString(mutedStyle.Render("  "+s.Benefit) + "\n")
	}
	supps.WriteString("\n")
	supps.WriteString(mutedStyle.Render(fmt.Sprintf("Food %s + supplements %s",
		cli.FormatCost(r.Costs.Food), cli.FormatCost(r.Costs.Supplements))))
	stack := components.ContentCard("Supplement Stack", supps.String(), widths[1])

	b.WriteString(components.CardRow([]string{diet, stack}))
	return b.String()
}

func renderWorkout(v view.FitnessView, cw int) string {
	d := v.Workout
	if d == nil {
		return ""
	}
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	title := d.Title
	if w := v.Inputs[wizard.InputWorkout]; w != "" {
		title = w
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Coach", Value: d.Coach},
		{Label: "Time", Value: d.Time},
		{Label: "Burn", Value: d.Burn},
		{Label: "Rounds", Value: fmt.Sprintf("%d", d.TotalRounds)},
	}, cw))
	b.WriteString("\n")

	var rounds strings.Builder
	rounds.WriteString(textStyle.Render(d.Description) + "\n")
	rounds.WriteString(mutedStyle.Render(strings.Join(d.Tags, " · ")) + "\n\n")
	for i, r := range d.Rounds {
		rounds.WriteString(mutedStyle.Render(fmt.Sprintf("%2d. %s %-24s %s", i+1, cli.FormatCheck(r.Done), r.Name, r.Duration)) + "\n")
	}
	b.WriteString(components.ContentCard(title, strings.TrimRight(rounds.String(), "\n"), cw))
	return b.String()
}

func renderActions(actions []string, cw int) string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Background).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)

	parts := make([]string, len(actions))
	for i, act := range actions {
		parts[i] = keyStyle.Render(fmt.Sprintf("[%d]", i+1)) + descStyle.Render(" "+act)
	}
	return lipgloss.NewStyle().Width(cw).Background(t.Background).Render(" " + strings.Join(parts, descStyle.Render("  ")))
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/pipeline"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/view"
	"github.com/theirongolddev/regimen/internal/wizard"

	"github.com/spf13/cobra"
)

var (
	flagFitnessDay  string
	flagFitnessTag  string
	flagFitnessDays int
)

var fitnessCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Weekly plan and the body-scan flow",
}

var fitnessPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Weekly plan and the workouts for one day",
	RunE:  runFitnessPlan,
}

var fitnessFlowCmd = &cobra.Command{
	Use:   "flow <action[:payload]>...",
	Short: "Drive the body-scan flow and print the step after each action",
	Example: `  regimen fitness flow start-scan photo-uploaded skip goal-selected:lose
  regimen fitness flow --day Wed open-workout:"Core Blast & Abs"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFitnessFlow,
}

var fitnessTransitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "Print the transition tables of both flows",
	RunE:  runFitnessTransitions,
}

func init() {
	fitnessCmd.PersistentFlags().StringVar(&flagFitnessDay, "day", "", "Plan day, e.g. Mon (default: today)")
	fitnessPlanCmd.Flags().StringVar(&flagFitnessTag, "tag", "", "Only workouts with this tag")
	fitnessFlowCmd.Flags().IntVar(&flagFitnessDays, "days", 30, "Days to project costs over")

	fitnessCmd.AddCommand(fitnessPlanCmd, fitnessFlowCmd, fitnessTransitionsCmd)
	rootCmd.AddCommand(fitnessCmd)
}

// selectDay moves the session to the --day flag, if one was given.
func selectDay(ctx context.Context, sess *session.Session) error {
	if flagFitnessDay == "" {
		return nil
	}
	day := strings.ToUpper(flagFitnessDay[:1]) + strings.ToLower(flagFitnessDay[1:])
	resp, err := sess.Apply(ctx, session.Request{Screen: session.ScreenFitness, Action: "day", Payload: day})
	if err != nil {
		return err
	}
	if p := resp.View.Fitness.Plan; p == nil || p.Day != day {
		return fmt.Errorf("unknown plan day %q", flagFitnessDay)
	}
	return nil
}

func runFitnessPlan(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctx context.Context, _ config.Config, sess *session.Session) error {
		if err := selectDay(ctx, sess); err != nil {
			return err
		}
		p := sess.View().Fitness.Plan

		fmt.Println()
		fmt.Println(cli.RenderTitle("WEEKLY PLAN"))
		fmt.Println()

		days := make([]string, len(p.Week))
		done := make([]bool, len(p.Week))
		rest := make([]bool, len(p.Week))
		rows := make([][]string, len(p.Week))
		for i, d := range p.Week {
			days[i], done[i], rest[i] = d.Day, d.Completed, d.Difficulty == "Rest"
			marker := ""
			if d.Day == p.Day {
				marker = "▸"
			}
			rows[i] = []string{marker, d.Day, d.Workout, d.Type, d.Difficulty, d.Duration}
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"", "Day", "Workout", "Type", "Difficulty", "Duration"},
			Rows:    rows,
			Left:    6,
		}))
		fmt.Printf("\n  %s\n", cli.RenderWeekStrip(days, done, rest))
		fmt.Printf("  %s\n\n", cli.RenderProgressBar(p.Progress.Ratio(), 30,
			fmt.Sprintf("%d/%d sessions", p.Progress.Completed, p.Progress.Total)))

		workouts := pipeline.FilterByTag(p.Workouts, flagFitnessTag)
		if len(workouts) == 0 {
			fmt.Printf("  No workouts for %s.\n\n", p.Day)
			return nil
		}
		wrows := make([][]string, len(workouts))
		for i, w := range workouts {
			wrows[i] = []string{w.Title, w.Duration, strings.Join(w.Tags, ", ")}
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Workouts · " + p.Day,
			Headers: []string{"Workout", "Duration", "Tags"},
			Rows:    wrows,
			Left:    3,
		}))
		fmt.Println()
		return nil
	})
}

func runFitnessFlow(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(ctx context.Context, _ config.Config, sess *session.Session) error {
		if err := selectDay(ctx, sess); err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("  %-28s %s\n", cli.Muted("start"), sess.View().Fitness.Step)

		var last view.FitnessView
		for _, act := range args {
			resp, err := sess.Apply(ctx, session.Request{Screen: session.ScreenFitness, Action: act})
			if err != nil {
				return err
			}
			last = resp.View.Fitness
			step := last.Step
			if last.Sub != "" {
				step += " (" + last.Sub + ")"
			}
			if !resp.Applied {
				step += "  " + cli.Warn("ignored")
			}
			fmt.Printf("  %-28s %s\n", cli.Muted(act), step)
		}
		fmt.Printf("\n  %s %s\n", cli.Muted("available:"), strings.Join(last.Actions, ", "))

		switch {
		case last.Results != nil:
			printResults(last.Results, flagFitnessDays)
		case last.Workout != nil:
			printWorkout(last)
		default:
			fmt.Println()
		}
		return nil
	})
}

func runFitnessTransitions(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(_ context.Context, _ config.Config, sess *session.Session) error {
		tables := sess.Transitions()
		for _, screen := range []string{session.ScreenFitness, session.ScreenPresence} {
			rows := make([][]string, 0, len(tables[screen]))
			for _, tr := range tables[screen] {
				to := make([]string, len(tr.To))
				for i, s := range tr.To {
					to[i] = string(s)
				}
				rows = append(rows, []string{string(tr.From), string(tr.Sub), string(tr.On), strings.Join(to, " | "), tr.Note})
			}
			fmt.Println()
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   strings.ToUpper(screen),
				Headers: []string{"From", "Sub", "On", "To", "Note"},
				Rows:    rows,
				Left:    5,
			}))
		}
		fmt.Println()
		return nil
	})
}

func printResults(r *view.FitnessResults, days int) {
	goal := "general fitness"
	switch {
	case r.Goal != nil:
		goal = r.Goal.Label
	case r.GoalPhoto:
		goal = "from goal photo"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("TRAINER RESULTS  " + goal))
	fmt.Println()

	rows := make([][]string, 0, len(r.Diet)+2)
	for _, m := range r.Diet {
		rows = append(rows, []string{m.Meal, m.Time, strings.Join(m.Foods, ", "), cli.FormatNumber(int64(m.Calories)), m.Protein, m.Cost})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", fmt.Sprintf("%d meals", r.DietTotals.Meals),
		cli.FormatNumber(int64(r.DietTotals.Calories)), cli.FormatGrams(r.DietTotals.Protein), cli.FormatCost(r.Costs.Food)})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Diet",
		Headers: []string{"Meal", "Time", "Foods", "kcal", "Protein", "Cost"},
		Rows:    rows,
		Left:    3,
	}))
	fmt.Println()

	srows := make([][]string, len(r.Supplements))
	for i, s := range r.Supplements {
		srows[i] = []string{s.Name, s.Dosage, s.Benefit, s.Cost}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Supplements",
		Headers: []string{"Name", "Dosage", "Benefit", "Cost"},
		Rows:    srows,
		Left:    3,
	}))
	fmt.Println()

	total := r.Costs.Total()
	fmt.Printf("  %s %s / day, %s over %d days\n\n", cli.Muted("Cost"),
		cli.FormatCost(total), cli.FormatCost(pipeline.ProjectCost(total, days)), days)
}

func printWorkout(v view.FitnessView) {
	d := v.Workout
	title := d.Title
	if w := v.Inputs[wizard.InputWorkout]; w != "" {
		title = w
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(title)))
	fmt.Println()
	fmt.Printf("  %s\n", d.Description)
	fmt.Printf("  %s %s  %s %s  %s %s\n\n",
		cli.Muted("Coach"), d.Coach, cli.Muted("Time"), d.Time, cli.Muted("Burn"), d.Burn)

	rows := make([][]string, len(d.Rounds))
	for i, r := range d.Rounds {
		rows[i] = []string{fmt.Sprintf("%d/%d", i+1, d.TotalRounds), cli.FormatCheck(r.Done), r.Name, r.Duration}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Round", "", "Exercise", "Duration"},
		Rows:    rows,
		Left:    3,
	}))
	fmt.Println()
}

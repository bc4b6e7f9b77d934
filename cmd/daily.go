package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/view"

	"github.com/spf13/cobra"
)

var flagDailyToggle []int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily protocol checklist and category scores",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntSliceVarP(&flagDailyToggle, "toggle", "t", nil, "Toggle task positions before printing (0-based)")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), func(ctx context.Context, _ config.Config, sess *session.Session) error {
		actions := make([]string, len(flagDailyToggle))
		for i, pos := range flagDailyToggle {
			actions[i] = "toggle:" + strconv.Itoa(pos)
		}
		if _, err := applyAll(ctx, sess, session.ScreenDaily, actions); err != nil {
			return err
		}
		printDaily(sess.View())
		return nil
	})
}

func printDaily(vm view.ViewModel) {
	d := vm.Daily

	fmt.Println()
	fmt.Println(cli.RenderTitle("DAILY PROTOCOL"))
	fmt.Println()

	rows := make([][]string, len(d.Tasks))
	for i, t := range d.Tasks {
		rows[i] = []string{strconv.Itoa(i), cli.FormatCheck(t.Completed), t.Task, t.Description}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "", "Task", "Description"},
		Rows:    rows,
		Left:    4,
	}))
	fmt.Println()

	ratio := 0.0
	if d.Total > 0 {
		ratio = float64(d.Completed) / float64(d.Total)
	}
	fmt.Printf("  %s\n\n", cli.RenderProgressBar(ratio, 30, fmt.Sprintf("%d/%d done", d.Completed, d.Total)))

	fmt.Println(cli.Header("  Scores"))
	for _, s := range d.Scores {
		fmt.Printf("  %s\n", cli.RenderScoreBar(s.Subject, s.Score, 12, 30))
	}
	fmt.Printf("  %s %d\n\n", cli.Muted("Overall"), d.Overall)

	f := vm.Food.Progress
	fmt.Printf("  %s %s of %s\n", cli.Muted("Calories"), cli.FormatCalories(f.Current), cli.FormatCalories(f.Goal))
	fmt.Println()
}

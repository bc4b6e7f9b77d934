package cmd

import (
	"context"
	"strings"

	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/wizard"

	"github.com/spf13/cobra"
)

var workoutCmd = &cobra.Command{
	Use:   "workout [title]",
	Short: "Show a workout card with its rounds",
	Long:  "Show a workout card. The title defaults to the first workout planned for the day.",
	RunE:  runWorkout,
}

func init() {
	workoutCmd.Flags().StringVar(&flagFitnessDay, "day", "", "Plan day, e.g. Mon (default: today)")
	rootCmd.AddCommand(workoutCmd)
}

func runWorkout(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(ctx context.Context, _ config.Config, sess *session.Session) error {
		if err := selectDay(ctx, sess); err != nil {
			return err
		}

		title := strings.Join(args, " ")
		if p := sess.View().Fitness.Plan; title == "" && p != nil && len(p.Workouts) > 0 {
			title = p.Workouts[0].Title
		}
		resp, err := sess.Apply(ctx, session.Request{
			Screen:  session.ScreenFitness,
			Action:  string(wizard.ActOpenWorkout),
			Payload: title,
		})
		if err != nil {
			return err
		}
		printWorkout(resp.View.Fitness)
		return nil
	})
}

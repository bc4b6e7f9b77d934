package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/wizard"

	"github.com/spf13/cobra"
)

var flagPresenceCategory string

var presenceCmd = &cobra.Command{
	Use:   "presence <query>",
	Short: "Research a topic and browse its categories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPresence,
}

func init() {
	presenceCmd.Flags().StringVarP(&flagPresenceCategory, "category", "c", "", "Open one category (learn, books, research, ...)")
	rootCmd.AddCommand(presenceCmd)
}

func runPresence(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(ctx context.Context, _ config.Config, sess *session.Session) error {
		query := strings.Join(args, " ")
		actions := []string{string(wizard.ActSearch) + ":" + query}
		if flagPresenceCategory != "" {
			actions = append(actions, string(wizard.ActSelectCategory)+":"+flagPresenceCategory)
		}
		resp, err := applyAll(ctx, sess, session.ScreenPresence, actions)
		if err != nil {
			return err
		}

		v := resp.View.Presence
		if flagPresenceCategory != "" && v.Category == nil {
			return fmt.Errorf("unknown category %q", flagPresenceCategory)
		}
		if v.Results == nil {
			fmt.Println("\n  Nothing to research.")
			return nil
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(strings.ToUpper(v.Results.Topic)))
		fmt.Println()

		if c := v.Category; c != nil {
			fmt.Println(cli.Header("  " + c.Title))
			for _, item := range c.Items {
				fmt.Printf("    • %s\n", item)
			}
			fmt.Println()
			return nil
		}

		fmt.Printf("  %s\n\n", v.Results.Overview)
		rows := make([][]string, len(v.Results.Categories))
		for i, c := range v.Results.Categories {
			rows[i] = []string{c.ID, c.Title, cli.FormatNumber(int64(len(c.Items)))}
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"ID", "Category", "Items"},
			Rows:    rows,
			Left:    2,
		}))
		fmt.Printf("\n  %s\n\n", cli.Muted("Open one with --category <id>"))
		return nil
	})
}

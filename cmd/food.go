package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/model"
	"github.com/theirongolddev/regimen/internal/pipeline"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/view"

	"github.com/spf13/cobra"
)

var flagFoodRemove []int

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search the food catalog and log food against the calorie goal",
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name (case-insensitive substring)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFoodSearch,
}

var foodListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List the whole food catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFoodList,
}

var foodAddCmd = &cobra.Command{
	Use:     "add <id>...",
	Aliases: []string{"log"},
	Short:   "Log foods by id and print totals and progress",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFoodAdd,
}

func init() {
	foodAddCmd.Flags().IntSliceVar(&flagFoodRemove, "remove", nil, "Entry positions to remove after adding (0-based)")
	foodCmd.AddCommand(foodSearchCmd, foodListCmd, foodAddCmd)
	rootCmd.AddCommand(foodCmd)
}

func runFoodSearch(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(ctx context.Context, _ config.Config, sess *session.Session) error {
		query := strings.Join(args, " ")
		resp, err := applyAll(ctx, sess, session.ScreenFood, []string{"search:" + query})
		if err != nil {
			return err
		}
		if len(resp.View.Food.Results) == 0 {
			fmt.Printf("\n  No foods match %q.\n", query)
			return nil
		}
		printFoods(fmt.Sprintf("FOODS  %q", query), resp.View.Food.Results)
		return nil
	})
}

func runFoodList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	result, err := loadData(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	foods := result.Catalog.Foods
	if len(args) == 1 {
		foods = pipeline.FilterByName(foods, func(f model.CatalogItem) string { return f.Name }, args[0])
	}
	printFoods(fmt.Sprintf("FOOD CATALOG  %s", result.FoodSource), foods)
	return nil
}

func runFoodAdd(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(ctx context.Context, _ config.Config, sess *session.Session) error {
		actions := make([]string, 0, len(args)+len(flagFoodRemove))
		for _, id := range args {
			actions = append(actions, "add:"+id)
		}
		for _, pos := range flagFoodRemove {
			actions = append(actions, "remove:"+strconv.Itoa(pos))
		}
		if _, err := applyAll(ctx, sess, session.ScreenFood, actions); err != nil {
			return err
		}
		printFoodLog(sess.View().Food)
		return nil
	})
}

func printFoods(title string, foods []model.CatalogItem) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := make([][]string, len(foods))
	for i, f := range foods {
		rows[i] = []string{
			f.ID,
			f.Name,
			f.Serving,
			cli.FormatCalories(f.Field("calories")),
			cli.FormatGrams(f.Field("protein")),
			cli.FormatGrams(f.Field("carbs")),
			cli.FormatGrams(f.Field("fat")),
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Serving", "Calories", "Protein", "Carbs", "Fat"},
		Rows:    rows,
		Left:    3,
	}))
	fmt.Println()
}

func printFoodLog(v view.FoodView) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("FOOD LOG"))
	fmt.Println()

	rows := make([][]string, 0, len(v.Entries)+5)
	for _, e := range v.Entries {
		rows = append(rows, []string{strconv.Itoa(e.Pos), e.Time, e.Name, e.Serving, cli.FormatCalories(e.Calories)})
	}
	rows = append(rows, []string{"---"})
	for _, f := range v.Fields {
		rows = append(rows, []string{"", "", f, "", cli.FormatNutrient(f, v.Totals[f])})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Time", "Food", "Serving", "Amount"},
		Rows:    rows,
		Left:    4,
	}))
	fmt.Println()

	p := v.Progress
	fmt.Printf("  %s\n", cli.RenderProgressBar(p.Ratio, 30,
		fmt.Sprintf("%s of %s", cli.FormatCalories(p.Current), cli.FormatCalories(p.Goal))))
	if p.Current > p.Goal {
		fmt.Printf("  %s\n", cli.Warn(fmt.Sprintf("Over goal by %s", cli.FormatCalories(p.Current-p.Goal))))
	} else {
		fmt.Printf("  %s %s\n", cli.Muted("Remaining"), cli.FormatCalories(p.Remaining))
	}
	fmt.Println()
}

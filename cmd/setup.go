package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/tui/theme"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
	// Setup must run even when the current config file is invalid.
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)
	prompt := func() string {
		fmt.Print("     > ")
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	cfg, err := config.Load()
	if err != nil {
		// A broken file is replaced, not patched.
		cfg = config.DefaultConfig()
	}

	fmt.Println()
	fmt.Println("  Welcome to regimen!")
	fmt.Println()

	// 1. Calorie goal
	fmt.Println("  1. Daily calorie goal")
	fmt.Printf("     Current: %s\n", cli.FormatCalories(cfg.Food.DailyCalorieGoal))
	for {
		answer := prompt()
		if answer == "" {
			break
		}
		goal, err := strconv.ParseFloat(answer, 64)
		if err == nil && goal > 0 {
			cfg.Food.DailyCalorieGoal = goal
			break
		}
		fmt.Println("     Enter a positive number of kcal.")
	}
	fmt.Println()

	// 2. Theme
	fmt.Println("  2. Color theme")
	current := 1
	names := theme.Names()
	for i, name := range names {
		mark := ""
		if name == cfg.Appearance.Theme {
			mark, current = " [current]", i+1
		}
		fmt.Printf("     (%d) %s%s\n", i+1, name, mark)
	}
	if n, err := strconv.Atoi(prompt()); err == nil && n >= 1 && n <= len(names) {
		current = n
	}
	cfg.Appearance.Theme = names[current-1]
	fmt.Println()

	// 3. Catalog
	fmt.Println("  3. Catalog file (YAML, empty for the built-in catalog)")
	if cfg.General.Catalog != "" {
		fmt.Printf("     Current: %s\n", cfg.General.Catalog)
	}
	if path := prompt(); path != "" {
		cfg.General.Catalog = path
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `regimen setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

package cmd

import (
	"fmt"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orNone := func(s, none string) string {
		if s == "" {
			return none
		}
		return s
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Catalog:       %s\n", orNone(cfg.General.Catalog, "built-in"))
	fmt.Println()

	fmt.Println("  [Food]")
	fmt.Printf("    Calorie goal:  %s\n", cli.FormatCalories(cfg.Food.DailyCalorieGoal))
	fmt.Printf("    Database:      %s\n", orNone(cfg.Food.Database, "not set"))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:         %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Debug:         %v\n", cfg.Log.Debug)
	fmt.Println()

	fmt.Println("  Run `regimen setup` to reconfigure.")
	return nil
}

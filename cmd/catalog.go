package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/regimen/internal/catalog"
	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagExportDB string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, validate and export the content catalog",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active catalog as YAML",
	RunE:  runCatalogShow,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file against the food schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCatalogValidate,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the food catalog to a SQLite database",
	RunE:  runCatalogExport,
}

func init() {
	catalogExportCmd.Flags().StringVar(&flagExportDB, "db", "", "SQLite file to write")
	_ = catalogExportCmd.MarkFlagRequired("db")

	catalogCmd.AddCommand(catalogShowCmd, catalogValidateCmd, catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	result, err := loadData(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	data, err := result.Catalog.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runCatalogValidate(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.General.Catalog
	if len(args) == 1 {
		path = args[0]
	}
	c, err := catalog.Load(path)
	if err != nil {
		return err
	}
	if path == "" {
		path = "built-in catalog"
	}
	fmt.Printf("  %s: ok (%s foods, %d days, %d categories)\n", path,
		cli.FormatNumber(int64(len(c.Foods))), len(c.Days()), len(c.CategoryIDs()))
	return nil
}

func runCatalogExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Export the YAML catalog, not a database the config may point at.
	cfg.Food.Database = ""
	result, err := loadData(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	n, err := pipeline.Export(result.Catalog, flagExportDB)
	if err != nil {
		return err
	}
	fmt.Printf("  Wrote %s foods to %s\n", cli.FormatNumber(int64(n)), flagExportDB)
	fmt.Printf("  Use it with --food-db %s or food.database in %s\n", flagExportDB, config.ConfigPath())
	return nil
}

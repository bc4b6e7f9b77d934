// Package cmd implements the regimen CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/logger"
	"github.com/theirongolddev/regimen/internal/pipeline"
	"github.com/theirongolddev/regimen/internal/session"

	"github.com/spf13/cobra"
)

var (
	flagCatalog string
	flagFoodDB  string
	flagQuiet   bool
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:           "regimen",
	Short:         "Daily protocol, fitness and food tracker",
	Long:          "Track a daily protocol, walk the fitness body-scan flow, log food against a calorie goal and browse presence research.",
	RunE:          runDaily,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return logger.Init(logger.Config{
			Debug:     flagDebug || cfg.Log.Debug,
			ConfigDir: config.ConfigDir(),
		})
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "YAML catalog file (default: config, then built-in)")
	rootCmd.PersistentFlags().StringVar(&flagFoodDB, "food-db", "", "SQLite food database (default: config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging to stderr")
}

// loadConfig reads the config file; flags win over it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagCatalog != "" {
		cfg.General.Catalog = flagCatalog
	}
	if flagFoodDB != "" {
		cfg.Food.Database = flagFoodDB
	}
	return cfg, nil
}

func loadOptions(cfg config.Config) pipeline.LoadOptions {
	return pipeline.LoadOptions{
		CatalogPath:  cfg.General.Catalog,
		FoodDatabase: cfg.Food.Database,
	}
}

// loadData is the shared catalog loading path used by all commands.
func loadData(ctx context.Context, cfg config.Config) (*pipeline.LoadResult, error) {
	start := time.Now()
	progressFn := func(stage string, current, total int) {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "\r  Loading %s [%d/%d]", stage, current, total)
		}
	}

	result, err := pipeline.Load(ctx, loadOptions(cfg), progressFn)
	if err != nil {
		if !flagQuiet {
			fmt.Fprintln(os.Stderr)
		}
		return nil, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\r  Loaded %d foods from %s    \n", result.FoodCount, result.FoodSource)
	}
	logger.Debug("catalog loaded", "foods", result.FoodCount, "source", result.FoodSource, "took", time.Since(start))
	return result, nil
}

// withSession loads the catalog, runs a session for the duration of fn
// and stops it afterwards.
func withSession(ctx context.Context, fn func(ctx context.Context, cfg config.Config, sess *session.Session) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	result, err := loadData(ctx, cfg)
	if err != nil {
		return err
	}
	sess, err := session.New(session.Config{
		Catalog:      result.Catalog,
		CalorieGoal:  cfg.Food.DailyCalorieGoal,
		EventsBuffer: cfg.Server.EventsBuffer,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	return fn(ctx, cfg, sess)
}

// applyAll sends each action to screen in order and stops at the first
// error the session reports.
func applyAll(ctx context.Context, sess *session.Session, screen string, actions []string) (session.Response, error) {
	var resp session.Response
	for _, act := range actions {
		r, err := sess.Apply(ctx, session.Request{Screen: screen, Action: act})
		if err != nil {
			return resp, err
		}
		resp = r
		if r.Error != "" {
			return resp, fmt.Errorf("%s: %s", act, r.Error)
		}
	}
	return resp, nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/logger"
	"github.com/theirongolddev/regimen/internal/tui"
	"github.com/theirongolddev/regimen/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !theme.SetActive(cfg.Appearance.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Appearance.Theme)
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app := tui.NewApp(ctx, tui.Options{
		Load:         loadOptions(cfg),
		CalorieGoal:  cfg.Food.DailyCalorieGoal,
		EventsBuffer: cfg.Server.EventsBuffer,
		NeedSetup:    !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/regimen/internal/cli"
	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/tui/components"
	"github.com/theirongolddev/regimen/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// settingsState tracks the outcome of the last settings save.
type settingsState struct {
	saved   bool
	saveErr error
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	orDefault := func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	}

	fields := []struct{ label, value string }{
		{"Calorie goal", cli.FormatCalories(cfg.Food.DailyCalorieGoal)},
		{"Theme", cfg.Appearance.Theme},
		{"Catalog", orDefault(cfg.General.Catalog, "(built-in)")},
		{"Food database", orDefault(cfg.Food.Database, "(none)")},
		{"Server address", cfg.Server.Addr},
		{"Event buffer", cli.FormatNumber(int64(cfg.Server.EventsBuffer))},
		{"Debug logging", fmt.Sprintf("%t", cfg.Log.Debug)},
	}

	var form strings.Builder
	for _, f := range fields {
		form.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
		form.WriteString(valueStyle.Render(f.value))
		form.WriteString("\n")
	}
	if a.settings.saveErr != nil {
		form.WriteString("\n" + warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)) + "\n")
	} else if a.settings.saved {
		form.WriteString("\n" + greenStyle.Render("Saved. A new calorie goal applies on next launch.") + "\n")
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[enter] edit"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	info.WriteString(labelStyle.Render("Food source:  ") + valueStyle.Render(a.source) + "\n")
	info.WriteString(labelStyle.Render("Load time:    ") + valueStyle.Render(a.loadTime.Round(time.Millisecond).String()))
	if a.sess != nil {
		info.WriteString("\n" + labelStyle.Render("Session:      ") + valueStyle.Render(a.sess.ID()))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", form.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}

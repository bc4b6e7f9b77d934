package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// formValues holds the editable configuration while a form is open.
type formValues struct {
	calorieGoal string
	theme       string
	catalog     string
	database    string
	debug       bool
}

func formValuesFrom(cfg config.Config) formValues {
	return formValues{
		calorieGoal: strconv.FormatFloat(cfg.Food.DailyCalorieGoal, 'f', -1, 64),
		theme:       cfg.Appearance.Theme,
		catalog:     cfg.General.Catalog,
		database:    cfg.Food.Database,
		debug:       cfg.Log.Debug,
	}
}

func validateCalorieGoal(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number of kcal")
	}
	if v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

// newConfigForm builds the first-run setup form, or the full settings form.
func newConfigForm(v *formValues, firstRun bool) *huh.Form {
	themes := huh.NewOptions(theme.Names()...)

	goal := huh.NewInput().
		Title("Daily calorie goal (kcal)").
		Value(&v.calorieGoal).
		Validate(validateCalorieGoal)
	pick := huh.NewSelect[string]().
		Title("Color theme").
		Options(themes...).
		Value(&v.theme)

	if firstRun {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewNote().
					Title("Welcome to regimen!").
					Description("Set a calorie goal and a theme.\nRun `regimen setup` anytime to change them."),
				goal,
				pick,
			),
		).WithTheme(huh.ThemeCharm())
	}

	return huh.NewForm(
		huh.NewGroup(
			goal,
			pick,
			huh.NewInput().
				Title("Catalog file").
				Description("YAML catalog; leave empty for the built-in one").
				Value(&v.catalog),
			huh.NewInput().
				Title("Food database").
				Description("SQLite file written by `regimen catalog export`").
				Value(&v.database),
			huh.NewConfirm().
				Title("Debug logging").
				Value(&v.debug),
		),
	).WithTheme(huh.ThemeCharm())
}

// saveForm writes the form values to the config file and applies the theme.
// The calorie goal takes effect on the next launch.
func (a *App) saveForm() error {
	cfg := loadConfigOrDefault()
	v := a.formVals

	if goal, err := strconv.ParseFloat(strings.TrimSpace(v.calorieGoal), 64); err == nil && goal > 0 {
		cfg.Food.DailyCalorieGoal = goal
	}
	cfg.Appearance.Theme = v.theme
	cfg.General.Catalog = strings.TrimSpace(v.catalog)
	cfg.Food.Database = strings.TrimSpace(v.database)
	cfg.Log.Debug = v.debug
	theme.SetActive(cfg.Appearance.Theme)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// Package catalog loads the static, read-only content the trackers operate
// on: the food database, the daily protocol, the fitness plans and the
// presence research results. A default catalog is embedded in the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/regimen/internal/ledger"
	"github.com/theirongolddev/regimen/internal/model"
)

//go:embed data/default.yaml
var defaultData []byte

// Catalog is the full set of static content.
type Catalog struct {
	Foods    []model.CatalogItem `yaml:"foods" json:"foods"`
	Daily    Daily               `yaml:"daily" json:"daily"`
	Fitness  Fitness             `yaml:"fitness" json:"fitness"`
	Presence Presence            `yaml:"presence" json:"presence"`
}

// Daily holds the daily protocol content.
type Daily struct {
	Tasks       []model.Task          `yaml:"tasks" json:"tasks"`
	Scores      []model.CategoryScore `yaml:"scores" json:"scores"`
	Shortcuts   []string              `yaml:"shortcuts" json:"shortcuts"`
	QuitOptions []string              `yaml:"quit_options" json:"quit_options"`
}

// Fitness holds the fitness plan content.
type Fitness struct {
	WeeklyPlan  []model.DayPlan            `yaml:"weekly_plan" json:"weekly_plan"`
	Workouts    map[string][]model.Workout `yaml:"workouts" json:"workouts"`
	Supplements []model.Supplement         `yaml:"supplements" json:"supplements"`
	Diet        []model.Meal               `yaml:"diet" json:"diet"`
	Goals       []model.GoalOption         `yaml:"goals" json:"goals"`
	Detail      model.WorkoutDetail        `yaml:"detail" json:"detail"`
}

// Presence holds the canned research results.
type Presence struct {
	Overview   string                   `yaml:"overview" json:"overview"`
	Categories []model.PresenceCategory `yaml:"categories" json:"categories"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultData)
	if err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog from path, or the embedded default when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Marshal encodes c as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the catalog for schema mismatches and duplicate ids.
func (c *Catalog) Validate() error {
	if err := ledger.ValidateCatalog(ledger.Nutrition, c.Foods); err != nil {
		return fmt.Errorf("foods: %w", err)
	}

	days := make(map[string]struct{}, len(c.Fitness.WeeklyPlan))
	for _, d := range c.Fitness.WeeklyPlan {
		if _, dup := days[d.Day]; dup {
			return &model.ConfigError{Field: "fitness.weekly_plan", Reason: fmt.Sprintf("duplicate day %q", d.Day)}
		}
		days[d.Day] = struct{}{}
	}
	for day := range c.Fitness.Workouts {
		if _, ok := days[day]; !ok {
			return &model.ConfigError{Field: "fitness.workouts", Reason: fmt.Sprintf("day %q not in weekly plan", day)}
		}
	}

	if err := uniqueIDs("fitness.goals", len(c.Fitness.Goals), func(i int) string { return c.Fitness.Goals[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("presence.categories", len(c.Presence.Categories), func(i int) string { return c.Presence.Categories[i].ID }); err != nil {
		return err
	}

	for _, s := range c.Daily.Scores {
		if s.Score < 0 || s.Score > 100 {
			return &model.ConfigError{Field: "daily.scores", Reason: fmt.Sprintf("%s score %d outside 0-100", s.Subject, s.Score)}
		}
	}
	return nil
}

func uniqueIDs(field string, n int, id func(int) string) error {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == "" {
			return &model.ConfigError{Field: field, Reason: fmt.Sprintf("entry %d has no id", i)}
		}
		if _, dup := seen[v]; dup {
			return &model.ConfigError{Field: field, Reason: fmt.Sprintf("duplicate id %q", v)}
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Goal returns the goal option with the given id.
func (c *Catalog) Goal(id string) (model.GoalOption, bool) {
	for _, g := range c.Fitness.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.GoalOption{}, false
}

// CategoryIDs returns the presence category ids in catalog order.
func (c *Catalog) CategoryIDs() []string {
	ids := make([]string, len(c.Presence.Categories))
	for i, cat := range c.Presence.Categories {
		ids[i] = cat.ID
	}
	return ids
}

// Scores returns the daily category scores keyed by subject.
func (c *Catalog) Scores() map[string]int {
	m := make(map[string]int, len(c.Daily.Scores))
	for _, s := range c.Daily.Scores {
		m[s.Subject] = s.Score
	}
	return m
}

// Days returns the weekday names of the weekly plan in order.
func (c *Catalog) Days() []string {
	days := make([]string, len(c.Fitness.WeeklyPlan))
	for i, d := range c.Fitness.WeeklyPlan {
		days[i] = d.Day
	}
	return days
}

var dayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayName returns the three-letter plan day for wd, e.g. "Tue".
func DayName(wd time.Weekday) string {
	if wd < time.Sunday || wd > time.Saturday {
		return "???"
	}
	return dayNames[wd]
}

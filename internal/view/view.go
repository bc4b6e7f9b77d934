// Package view builds declarative, JSON-serialisable view models as pure
// functions of the flow states, the ledger and the catalog.
package view

import (
	"slices"

	"github.com/theirongolddev/regimen/internal/catalog"
	"github.com/theirongolddev/regimen/internal/ledger"
	"github.com/theirongolddev/regimen/internal/model"
	"github.com/theirongolddev/regimen/internal/pipeline"
	"github.com/theirongolddev/regimen/internal/presence"
	"github.com/theirongolddev/regimen/internal/protocol"
	"github.com/theirongolddev/regimen/internal/score"
	"github.com/theirongolddev/regimen/internal/wizard"
)

// Snapshot is everything a render needs.
type Snapshot struct {
	Catalog *catalog.Catalog

	FitnessFlow *wizard.Flow
	Fitness     wizard.State
	Day         string

	PresenceFlow *wizard.Flow
	Presence     wizard.State

	Food      ledger.Ledger
	FoodQuery string

	Daily protocol.Checklist
}

// ViewModel is the full render output.
type ViewModel struct {
	Daily    DailyView    `json:"daily"`
	Fitness  FitnessView  `json:"fitness"`
	Food     FoodView     `json:"food"`
	Presence PresenceView `json:"presence"`
}

// Render builds every screen.
func Render(s Snapshot) ViewModel {
	return ViewModel{
		Daily:    Daily(s.Daily, s.Catalog),
		Fitness:  Fitness(s.FitnessFlow, s.Fitness, s.Day, s.Catalog),
		Food:     Food(s.Food, s.FoodQuery, s.Catalog.Foods),
		Presence: Presence(s.PresenceFlow, s.Presence, s.Catalog),
	}
}

// FoodEntry is one logged food as displayed.
type FoodEntry struct {
	Pos      int     `json:"pos"`
	Key      string  `json:"key"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Serving  string  `json:"serving"`
	Calories float64 `json:"calories"`
	Time     string  `json:"time"`
}

// FoodView is the food tracker screen.
type FoodView struct {
	Query    string              `json:"query"`
	Results  []model.CatalogItem `json:"results"`
	Entries  []FoodEntry         `json:"entries"`
	Fields   []string            `json:"fields"`
	Totals   map[string]float64  `json:"totals"`
	Progress model.GoalProgress  `json:"progress"`
}

// Food renders the food tracker.
func Food(l ledger.Ledger, query string, foods []model.CatalogItem) FoodView {
	v := FoodView{
		Query:    query,
		Results:  slices.Collect(ledger.Filter(foods, query)),
		Fields:   l.FieldNames(),
		Totals:   l.Totals(),
		Progress: l.Progress(),
	}
	primary := l.Schema().Primary
	for i, e := range l.Entries() {
		v.Entries = append(v.Entries, FoodEntry{
			Pos:      i,
			Key:      e.Key.String(),
			ID:       e.ID,
			Name:     e.Name,
			Serving:  e.Serving,
			Calories: e.Fields[primary],
			Time:     e.InsertedAt.Format("15:04"),
		})
	}
	return v
}

// FitnessPlan is the plan step content.
type FitnessPlan struct {
	Day      string                `json:"day"`
	Week     []model.DayPlan       `json:"week"`
	Progress pipeline.WeekProgress `json:"progress"`
	Workouts []model.Workout       `json:"workouts"`
}

// FitnessResults is the trainer results content.
type FitnessResults struct {
	Goal        *model.GoalOption    `json:"goal,omitempty"`
	GoalPhoto   bool                 `json:"goal_photo"`
	Diet        []model.Meal         `json:"diet"`
	DietTotals  pipeline.DietSummary `json:"diet_totals"`
	Supplements []model.Supplement   `json:"supplements"`
	Costs       model.CostTotals     `json:"costs"`
}

// FitnessView is the fitness module screen for the current step.
type FitnessView struct {
	Step    string               `json:"step"`
	Sub     string               `json:"sub,omitempty"`
	Actions []string             `json:"actions"`
	Inputs  map[string]string    `json:"inputs"`
	Plan    *FitnessPlan         `json:"plan,omitempty"`
	Goals   []model.GoalOption   `json:"goals,omitempty"`
	Results *FitnessResults      `json:"results,omitempty"`
	Workout *model.WorkoutDetail `json:"workout,omitempty"`
}

// Fitness renders the fitness module.
func Fitness(f *wizard.Flow, s wizard.State, day string, c *catalog.Catalog) FitnessView {
	v := FitnessView{
		Step:    string(s.Step),
		Sub:     string(s.Sub),
		Actions: actions(f, s),
		Inputs:  inputs(s),
	}

	switch s.Step {
	case wizard.StepPlan:
		v.Plan = &FitnessPlan{
			Day:      day,
			Week:     c.Fitness.WeeklyPlan,
			Progress: pipeline.AggregateWeek(c.Fitness.WeeklyPlan),
			Workouts: pipeline.WorkoutsFor(c.Fitness.Workouts, day),
		}
	case wizard.StepGoalOptions:
		v.Goals = c.Fitness.Goals
	case wizard.StepResults:
		costs, _ := pipeline.DailyCosts(c.Fitness.Diet, c.Fitness.Supplements)
		r := &FitnessResults{
			GoalPhoto:   s.Flag(wizard.InputGoalPhoto),
			Diet:        c.Fitness.Diet,
			DietTotals:  pipeline.DietTotals(c.Fitness.Diet),
			Supplements: c.Fitness.Supplements,
			Costs:       costs,
		}
		if g, ok := c.Goal(s.Text(wizard.InputSelectedGoal)); ok {
			r.Goal = &g
		}
		v.Results = r
	case wizard.StepWorkoutDetail:
		d := c.Fitness.Detail
		v.Workout = &d
	}
	return v
}

// PresenceView is the presence research screen.
type PresenceView struct {
	Step     string                  `json:"step"`
	Actions  []string                `json:"actions"`
	Query    string                  `json:"query,omitempty"`
	Results  *presence.Results       `json:"results,omitempty"`
	Category *model.PresenceCategory `json:"category,omitempty"`
}

// Presence renders the presence research browser.
func Presence(f *wizard.Flow, s wizard.State, c *catalog.Catalog) PresenceView {
	v := PresenceView{
		Step:    string(s.Step),
		Actions: actions(f, s),
		Query:   s.Text(wizard.InputQuery),
	}
	content := presence.Content{Overview: c.Presence.Overview, Categories: c.Presence.Categories}
	if r, ok := content.Search(v.Query); ok {
		v.Results = &r
		if cat, ok := r.Category(s.Text(wizard.InputCategory)); ok && s.Step == wizard.StepCategory {
			v.Category = &cat
		}
	}
	return v
}

// DailyView is the daily protocol screen.
type DailyView struct {
	Tasks       []model.Task          `json:"tasks"`
	Completed   int                   `json:"completed"`
	Total       int                   `json:"total"`
	Scores      []model.CategoryScore `json:"scores"`
	Overall     int                   `json:"overall"`
	Shortcuts   []string              `json:"shortcuts"`
	QuitOptions []string              `json:"quit_options"`
}

// Daily renders the daily protocol.
func Daily(cl protocol.Checklist, c *catalog.Catalog) DailyView {
	done, total := cl.Progress()
	return DailyView{
		Tasks:       cl.Tasks(),
		Completed:   done,
		Total:       total,
		Scores:      c.Daily.Scores,
		Overall:     score.Overall(c.Scores()),
		Shortcuts:   c.Daily.Shortcuts,
		QuitOptions: c.Daily.QuitOptions,
	}
}

func actions(f *wizard.Flow, s wizard.State) []string {
	if f == nil {
		return nil
	}
	kinds := f.Available(s)
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func inputs(s wizard.State) map[string]string {
	out := make(map[string]string, len(s.Inputs))
	for k, v := range s.Inputs {
		out[k] = v.String()
	}
	return out
}

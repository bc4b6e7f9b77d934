// Package pipeline loads the catalog and computes the derived figures shown
// alongside it: diet totals, daily costs, weekly progress and filtered
// listings.
package pipeline

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/regimen/internal/model"
)

// DietSummary totals the customized diet plan for one day.
type DietSummary struct {
	Meals    int     `json:"meals"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein_g"`
}

// DietTotals sums calories and protein grams over the diet plan. Protein
// strings that are not of the form "28g" count as zero.
func DietTotals(diet []model.Meal) DietSummary {
	var s DietSummary
	for _, m := range diet {
		s.Meals++
		s.Calories += m.Calories
		s.Protein += parseGrams(m.Protein)
	}
	return s
}

func parseGrams(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "g"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// WorkoutsFor returns the workouts offered on day, matched ignoring case.
// Unknown days return nil.
func WorkoutsFor(workouts map[string][]model.Workout, day string) []model.Workout {
	if w, ok := workouts[day]; ok {
		return w
	}
	for d, w := range workouts {
		if strings.EqualFold(d, day) {
			return w
		}
	}
	return nil
}

// WeekProgress counts completed days of the weekly plan. Rest days are not
// counted toward the total.
type WeekProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Ratio returns Completed / Total, or 0 for an empty week.
func (w WeekProgress) Ratio() float64 {
	if w.Total == 0 {
		return 0
	}
	return float64(w.Completed) / float64(w.Total)
}

// AggregateWeek summarizes the weekly plan.
func AggregateWeek(plan []model.DayPlan) WeekProgress {
	var p WeekProgress
	for _, d := range plan {
		if strings.EqualFold(d.Difficulty, "Rest") {
			continue
		}
		p.Total++
		if d.Completed {
			p.Completed++
		}
	}
	return p
}

// FilterByName returns the items whose name contains query, ignoring case.
// An empty query returns every item.
func FilterByName[T any](items []T, name func(T) string, query string) []T {
	if query == "" {
		return items
	}
	var result []T
	for _, it := range items {
		if containsIgnoreCase(name(it), query) {
			result = append(result, it)
		}
	}
	return result
}

// FilterByTag returns the workouts carrying tag, ignoring case.
func FilterByTag(workouts []model.Workout, tag string) []model.Workout {
	if tag == "" {
		return workouts
	}
	var result []model.Workout
	for _, w := range workouts {
		for _, t := range w.Tags {
			if strings.EqualFold(t, tag) {
				result = append(result, w)
				break
			}
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

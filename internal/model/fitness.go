package model

// DayPlan is one row of the weekly workout plan.
type DayPlan struct {
	Day        string `yaml:"day" json:"day"`
	Workout    string `yaml:"workout" json:"workout"`
	Duration   string `yaml:"duration" json:"duration"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
	Type       string `yaml:"type" json:"type"`
	Completed  bool   `yaml:"completed" json:"completed"`
}

// Workout is a workout card offered for a weekday.
type Workout struct {
	Title    string   `yaml:"title" json:"title"`
	Duration string   `yaml:"duration" json:"duration"`
	Tags     []string `yaml:"tags" json:"tags"`
}

// Supplement is one entry of the supplement stack. Cost is a per-day price
// string such as "$0.15/day".
type Supplement struct {
	Name    string `yaml:"name" json:"name"`
	Dosage  string `yaml:"dosage" json:"dosage"`
	Cost    string `yaml:"cost" json:"cost"`
	Benefit string `yaml:"benefit" json:"benefit"`
}

// Meal is one meal of the customized diet plan.
type Meal struct {
	Meal     string   `yaml:"meal" json:"meal"`
	Time     string   `yaml:"time" json:"time"`
	Foods    []string `yaml:"foods" json:"foods"`
	Calories int      `yaml:"calories" json:"calories"`
	Protein  string   `yaml:"protein" json:"protein"` // e.g. "28g"
	Cost     string   `yaml:"cost" json:"cost"`       // e.g. "$2.50"
}

// GoalOption is a fitness objective offered when no goal photo is given.
type GoalOption struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
}

// Round is one round of a workout session.
type Round struct {
	Name     string `yaml:"name" json:"name"`
	Duration string `yaml:"duration" json:"duration"`
	Done     bool   `yaml:"done" json:"done"`
}

// WorkoutDetail describes the workout opened from the plan.
type WorkoutDetail struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Coach       string   `yaml:"coach" json:"coach"`
	Time        string   `yaml:"time" json:"time"`
	Burn        string   `yaml:"burn" json:"burn"`
	Tags        []string `yaml:"tags" json:"tags"`
	TotalRounds int      `yaml:"total_rounds" json:"total_rounds"`
	Rounds      []Round  `yaml:"rounds" json:"rounds"`
}

// CostTotals holds the per-day cost of the diet plan and supplement stack.
type CostTotals struct {
	Food        float64 `json:"food"`
	Supplements float64 `json:"supplements"`
}

// Total returns food plus supplements.
func (c CostTotals) Total() float64 {
	return c.Food + c.Supplements
}

package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/regimen/internal/catalog"
	"github.com/theirongolddev/regimen/internal/ledger"
	"github.com/theirongolddev/regimen/internal/protocol"
	"github.com/theirongolddev/regimen/internal/wizard"
)

func testSnapshot(t *testing.T) Snapshot {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2026, 1, 5, 7, 45, 0, 0, time.Local) }
	l, err := ledger.New(ledger.Nutrition, 2000, ledger.WithClock(clock))
	require.NoError(t, err)

	ff := wizard.NewFitness()
	pf := wizard.NewPresence(c.CategoryIDs())
	return Snapshot{
		Catalog:      c,
		FitnessFlow:  ff,
		Fitness:      ff.Initial(),
		Day:          "Tue",
		PresenceFlow: pf,
		Presence:     pf.Initial(),
		Food:         l,
		Daily:        protocol.New(c.Daily.Tasks),
	}
}

func TestRenderInitial(t *testing.T) {
	s := testSnapshot(t)
	vm := Render(s)

	assert.Equal(t, "plan", vm.Fitness.Step)
	require.NotNil(t, vm.Fitness.Plan)
	assert.Equal(t, "Tue", vm.Fitness.Plan.Day)
	assert.Len(t, vm.Fitness.Plan.Workouts, 2)
	assert.Equal(t, []string{"open-workout", "start-scan"}, vm.Fitness.Actions)
	assert.Nil(t, vm.Fitness.Results)

	assert.Empty(t, vm.Food.Results)
	assert.Empty(t, vm.Food.Entries)
	assert.Equal(t, 2000.0, vm.Food.Progress.Remaining)

	assert.Equal(t, 74, vm.Daily.Overall)
	assert.Equal(t, 3, vm.Daily.Total)

	assert.Equal(t, "search", vm.Presence.Step)
	assert.Nil(t, vm.Presence.Results)

	_, err := json.Marshal(vm)
	require.NoError(t, err)
}

func TestRenderFood(t *testing.T) {
	s := testSnapshot(t)
	apple, _ := ledger.Lookup(s.Catalog.Foods, "1")
	s.Food, _ = s.Food.Add(apple)
	s.FoodQuery = "ban"

	v := Food(s.Food, s.FoodQuery, s.Catalog.Foods)
	require.Len(t, v.Results, 1)
	assert.Equal(t, "Banana", v.Results[0].Name)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, 95.0, v.Entries[0].Calories)
	assert.Equal(t, "07:45", v.Entries[0].Time)
	assert.InDelta(t, 0.0475, v.Progress.Ratio, 1e-12)
	assert.Equal(t, 95.0, v.Totals["calories"])
	assert.Equal(t, []string{"calories", "protein", "carbs", "fat"}, v.Fields)
}

func TestRenderFitnessResults(t *testing.T) {
	s := testSnapshot(t)
	f := s.FitnessFlow
	st := s.Fitness
	for _, a := range []string{"start-scan", "photo-uploaded", "skip", "goal-selected:lose"} {
		st = f.Dispatch(st, wizard.ParseAction(a))
	}

	v := Fitness(f, st, s.Day, s.Catalog)
	assert.Equal(t, "results", v.Step)
	require.NotNil(t, v.Results)
	require.NotNil(t, v.Results.Goal)
	assert.Equal(t, "Lose Weight", v.Results.Goal.Label)
	assert.InDelta(t, 15.75, v.Results.Costs.Total(), 1e-9)
	assert.Equal(t, 2470, v.Results.DietTotals.Calories)
	assert.Nil(t, v.Plan)
}

func TestRenderGoalOptionsAndDetail(t *testing.T) {
	s := testSnapshot(t)
	f := s.FitnessFlow

	st := f.Dispatch(s.Fitness, wizard.ParseAction("start-scan"))
	st = f.Dispatch(st, wizard.ParseAction("photo-uploaded"))
	st = f.Dispatch(st, wizard.ParseAction("skip"))
	v := Fitness(f, st, s.Day, s.Catalog)
	assert.Len(t, v.Goals, 3)

	detail := f.Dispatch(s.Fitness, wizard.ParseAction("open-workout"))
	v = Fitness(f, detail, s.Day, s.Catalog)
	require.NotNil(t, v.Workout)
	assert.Equal(t, "JAB AND STRAIGHT", v.Workout.Title)
}

func TestRenderPresence(t *testing.T) {
	s := testSnapshot(t)
	f := s.PresenceFlow

	st := f.Dispatch(s.Presence, wizard.ParseAction("search:confidence"))
	v := Presence(f, st, s.Catalog)
	require.NotNil(t, v.Results)
	assert.Equal(t, "confidence", v.Results.Topic)
	assert.Nil(t, v.Category)

	st = f.Dispatch(st, wizard.ParseAction("select-category:books"))
	v = Presence(f, st, s.Catalog)
	require.NotNil(t, v.Category)
	assert.Equal(t, "Books", v.Category.Title)
}

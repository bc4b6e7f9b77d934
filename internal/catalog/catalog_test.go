package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/regimen/internal/model"
	"github.com/theirongolddev/regimen/internal/score"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Foods, 10)
	assert.Equal(t, "Apple", c.Foods[0].Name)
	assert.Equal(t, 95.0, c.Foods[0].Field("calories"))

	assert.Len(t, c.Daily.Tasks, 3)
	assert.Len(t, c.Daily.QuitOptions, 8)
	assert.Len(t, c.Daily.Shortcuts, 4)
	assert.Equal(t, 74, score.Overall(c.Scores()))

	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, c.Days())
	assert.Len(t, c.Fitness.Workouts["Tue"], 2)
	assert.Len(t, c.Fitness.Diet, 6)
	assert.Len(t, c.Fitness.Supplements, 4)
	assert.Equal(t, "Jocelyn Levin", c.Fitness.Detail.Coach)
	assert.Equal(t, "00:30", c.Fitness.Detail.Rounds[0].Duration)

	g, ok := c.Goal("lose")
	require.True(t, ok)
	assert.Equal(t, "Lose Weight", g.Label)

	assert.Len(t, c.CategoryIDs(), 7)
	assert.Contains(t, c.Presence.Categories[4].Items, "Success Rate: 85% with proper posture")
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Foods, 10)
}

func TestLoadRoundTripsThroughFile(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)
	def.Foods = def.Foods[:2]

	data, err := def.Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, def.Foods, c.Foods)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsPartialFood(t *testing.T) {
	data := []byte(`
foods:
  - {id: "1", name: Apple, nutrients: {calories: 95}}
`)
	_, err := Parse(data)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{
			name:  "duplicate day",
			data:  "fitness:\n  weekly_plan:\n    - {day: Mon}\n    - {day: Mon}\n",
			field: "fitness.weekly_plan",
		},
		{
			name:  "workouts for unknown day",
			data:  "fitness:\n  workouts:\n    Funday: [{title: x}]\n",
			field: "fitness.workouts",
		},
		{
			name:  "duplicate goal",
			data:  "fitness:\n  goals: [{id: lose}, {id: lose}]\n",
			field: "fitness.goals",
		},
		{
			name:  "category without id",
			data:  "presence:\n  categories: [{title: Books}]\n",
			field: "presence.categories",
		},
		{
			name:  "score out of range",
			data:  "daily:\n  scores: [{subject: Body, score: 120}]\n",
			field: "daily.scores",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			var cfgErr *model.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestDayNameMatchesPlanDays(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.Contains(t, c.Days(), DayName(wd), "weekday %v", wd)
	}
	assert.Equal(t, "Tue", DayName(time.Tuesday))
	assert.Equal(t, "???", DayName(time.Weekday(9)))
}

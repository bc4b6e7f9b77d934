package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTabBarWidthMatchesTabVisualWidth(t *testing.T) {
	for active := range Tabs {
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1 // separators

		bar := RenderTabBar(active, want)
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: bar width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	tests := []struct {
		key  rune
		want int
	}{
		{'d', 0},
		{'f', 1},
		{'o', 2},
		{'p', 3},
		{'x', 4},
		{'z', -1},
	}
	for _, tt := range tests {
		if got := TabIdxByKey(tt.key); got != tt.want {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestHBarChart(t *testing.T) {
	out := HBarChart([]HBar{{"Mind", 80}, {"Body", 40}}, 100, 30)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	// width 30 - label 4 - 6 = 20 cells
	if got := strings.Count(lines[0], "█"); got != 16 {
		t.Errorf("Mind bar = %d cells, want 16", got)
	}
	if got := strings.Count(lines[1], "█"); got != 8 {
		t.Errorf("Body bar = %d cells, want 8", got)
	}
	if HBarChart(nil, 100, 30) != "" {
		t.Error("empty chart should render nothing")
	}
}

func TestBarChartHeight(t *testing.T) {
	out := BarChart([]float64{400, 650, 150}, []string{"B", "L", "S"}, "#3AA99F", 40, 6)
	// 6 rows + axis + labels
	if got := len(strings.Split(out, "\n")); got != 8 {
		t.Errorf("BarChart lines = %d, want 8", got)
	}
	if !strings.Contains(out, "700") {
		t.Errorf("BarChart should label the 700 ceiling:\n%s", out)
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{650, 100},
		{100, 20},
		{2470, 500},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestGoalBarClamps(t *testing.T) {
	if !strings.Contains(GoalBar("kcal", 1.7, 4, 10), "100%") {
		t.Error("ratio above 1 should render as 100%")
	}
	if !strings.Contains(ProgressBar(-0.5, 10), "0%") {
		t.Error("negative ratio should render as 0%")
	}
}

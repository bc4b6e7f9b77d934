package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func plain(s string) string { return ansi.Strip(s) }

func TestRenderTableAlignsColumns(t *testing.T) {
	out := plain(RenderTable(Table{
		Title:   "Food Log",
		Headers: []string{"Food", "kcal"},
		Rows: [][]string{
			{"Apple", "95"},
			{"---"},
			{"Chicken Breast", "231"},
		},
	}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Food Log") {
		t.Errorf("title line = %q", lines[0])
	}
	if lines[4] != "│ Apple          │   95 │" {
		t.Errorf("row = %q", lines[4])
	}
	if lines[6] != "│ Chicken Breast │  231 │" {
		t.Errorf("row = %q", lines[6])
	}
	for _, l := range lines[1:] {
		if w := len([]rune(l)); w != len([]rune(lines[1])) {
			t.Errorf("line %q width %d differs from border", l, w)
		}
	}
}

func TestRenderTableLeftColumns(t *testing.T) {
	out := plain(RenderTable(Table{
		Headers: []string{"Meal", "Time", "kcal"},
		Rows:    [][]string{{"Lunch", "12:30 PM", "650"}},
		Left:    2,
	}))
	if !strings.Contains(out, "│ Lunch │ 12:30 PM │  650 │") {
		t.Errorf("unexpected layout:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		ratio  float64
		filled int
	}{
		{0, 0},
		{0.5, 10},
		{1, 20},
		{1.7, 20},
		{-1, 0},
	}
	for _, tt := range tests {
		out := plain(RenderProgressBar(tt.ratio, 20, "x"))
		if got := strings.Count(out, "█"); got != tt.filled {
			t.Errorf("RenderProgressBar(%v) filled = %d, want %d", tt.ratio, got, tt.filled)
		}
		if got := strings.Count(out, "░"); got != 20-tt.filled {
			t.Errorf("RenderProgressBar(%v) empty = %d, want %d", tt.ratio, got, 20-tt.filled)
		}
		if !strings.HasSuffix(out, "] x") {
			t.Errorf("RenderProgressBar(%v) = %q, want label suffix", tt.ratio, out)
		}
	}
}

func TestRenderScoreBar(t *testing.T) {
	out := plain(RenderScoreBar("Mind", 80, 6, 10))
	if got := strings.Count(out, "█"); got != 8 {
		t.Errorf("filled = %d, want 8", got)
	}
	if !strings.HasSuffix(out, " 80") {
		t.Errorf("RenderScoreBar = %q", out)
	}
}

func TestRenderWeekStrip(t *testing.T) {
	out := plain(RenderWeekStrip(
		[]string{"Mon", "Tue", "Wed"},
		[]bool{true, false, false},
		[]bool{false, false, true},
	))
	if out != "Mon ✓ Tue · Wed -" {
		t.Errorf("RenderWeekStrip = %q", out)
	}
}

package score

import "testing"

func TestOverall(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]int
		want   int
	}{
		{"five areas", map[string]int{"Fitness": 75, "Fashion": 60, "Body": 80, "Presence": 70, "Daily": 85}, 74},
		{"empty", nil, 0},
		{"single", map[string]int{"Body": 42}, 42},
		{"half rounds up", map[string]int{"a": 70, "b": 71}, 71},
		{"below half rounds down", map[string]int{"a": 70, "b": 70, "c": 71}, 70},
		{"two thirds rounds up", map[string]int{"a": 70, "b": 71, "c": 71}, 71},
		{"clamped", map[string]int{"a": 150, "b": -20}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(tt.scores); got != tt.want {
				t.Errorf("Overall() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRanked(t *testing.T) {
	got := Ranked(map[string]int{"Body": 80, "Daily": 85, "Fashion": 60, "Fitness": 80})
	want := []string{"Daily", "Body", "Fitness", "Fashion"}
	if len(got) != len(want) {
		t.Fatalf("Ranked() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ranked()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

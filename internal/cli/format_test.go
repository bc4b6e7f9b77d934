package cli

import "testing"

func TestFormatCalories(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 kcal"},
		{95, "95 kcal"},
		{2470, "2,470 kcal"},
		{1999.6, "2,000 kcal"},
	}
	for _, tt := range tests {
		if got := FormatCalories(tt.in); got != tt.want {
			t.Errorf("FormatCalories(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatGrams(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{31, "31g"},
		{0.3, "0.3g"},
		{157, "157g"},
		{31.5, "31.5g"},
	}
	for _, tt := range tests {
		if got := FormatGrams(tt.in); got != tt.want {
			t.Errorf("FormatGrams(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNutrient(t *testing.T) {
	if got := FormatNutrient("calories", 326); got != "326 kcal" {
		t.Errorf("FormatNutrient(calories) = %q", got)
	}
	if got := FormatNutrient("protein", 31.5); got != "31.5g" {
		t.Errorf("FormatNutrient(protein) = %q", got)
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.15, "$0.15"},
		{15.75, "$15.75"},
		{472.4, "$472"},
		{5748.75, "$5,749"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.in); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.5); got != "50.0%" {
		t.Errorf("FormatPercent(0.5) = %q, want 50.0%%", got)
	}
	if got := FormatPercent(1); got != "100.0%" {
		t.Errorf("FormatPercent(1) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Salmon", 10, "Salmon"},
		{"Chicken Breast", 8, "Chicken…"},
		{"Chicken Breast", 9, "Chicken…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

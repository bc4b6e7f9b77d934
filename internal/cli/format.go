// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatCalories formats a calorie amount, e.g. 2470 -> "2,470 kcal".
func FormatCalories(kcal float64) string {
	return humanize.Comma(int64(math.Round(kcal))) + " kcal"
}

// FormatGrams formats a gram amount with one decimal when it has one.
// e.g., 31 -> "31g", 0.3 -> "0.3g"
func FormatGrams(g float64) string {
	if g == math.Trunc(g) {
		return fmt.Sprintf("%.0fg", g)
	}
	return fmt.Sprintf("%.1fg", g)
}

// FormatNutrient formats a nutrient total using the unit its name implies.
func FormatNutrient(name string, v float64) string {
	if name == "calories" {
		return FormatCalories(v)
	}
	return FormatGrams(v)
}

// FormatCost formats a USD cost value.
func FormatCost(cost float64) string {
	if cost >= 1000 {
		return "$" + FormatNumber(int64(math.Round(cost)))
	}
	if cost >= 100 {
		return fmt.Sprintf("$%.0f", cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatCheck renders a checklist marker.
func FormatCheck(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// Truncate shortens s to max runes, ending in an ellipsis when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return strings.TrimRight(string(r[:max-1]), " ") + "…"
}

package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/regimen/internal/model"
)

// ParseCost reads a price string such as "$2.50" or "$0.15/day". Anything
// after a slash is the billing period and is ignored.
func ParseCost(s string) (float64, error) {
	amount, _, _ := strings.Cut(s, "/")
	amount = strings.TrimSpace(amount)
	amount = strings.TrimPrefix(amount, "$")
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing cost %q: %w", s, err)
	}
	return v, nil
}

// DailyCosts sums the per-day cost of the diet plan and supplement stack.
// Unparseable prices are skipped and counted in the returned int.
func DailyCosts(diet []model.Meal, supplements []model.Supplement) (model.CostTotals, int) {
	var totals model.CostTotals
	skipped := 0

	for _, m := range diet {
		v, err := ParseCost(m.Cost)
		if err != nil {
			skipped++
			continue
		}
		totals.Food += v
	}
	for _, s := range supplements {
		v, err := ParseCost(s.Cost)
		if err != nil {
			skipped++
			continue
		}
		totals.Supplements += v
	}

	return totals, skipped
}

// ProjectCost scales a per-day total to a number of days.
func ProjectCost(perDay float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return perDay * float64(days)
}

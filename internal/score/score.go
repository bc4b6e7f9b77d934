// Package score aggregates per-area scores into one overall score.
package score

import "sort"

// Overall returns the arithmetic mean of scores rounded half up, clamped to
// 0-100. An empty map scores 0.
func Overall(scores map[string]int) int {
	n := len(scores)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, v := range scores {
		sum += clamp(v)
	}
	// round half up on the exact rational sum/n
	return (2*sum + n) / (2 * n)
}

// Ranked returns the subjects ordered by score, highest first; ties sort by
// name.
func Ranked(scores map[string]int) []string {
	out := make([]string, 0, len(scores))
	for k := range scores {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if scores[out[i]] != scores[out[j]] {
			return scores[out[i]] > scores[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

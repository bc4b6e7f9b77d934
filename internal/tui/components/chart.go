package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/regimen/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// HBar is one row of a horizontal bar chart.
type HBar struct {
	Label string
	Value float64
}

// HBarChart renders labelled horizontal bars scaled to maxValue.
func HBarChart(bars []HBar, maxValue float64, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active
	if maxValue <= 0 {
		maxValue = 1
	}

	labelW := 0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
	}
	barW := max(width-labelW-6, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	lines := make([]string, len(bars))
	for i, b := range bars {
		n := int(math.Round(min(max(b.Value/maxValue, 0), 1) * float64(barW)))
		fill := lipgloss.NewStyle().Foreground(ColorForScore(b.Value / maxValue)).Background(t.Surface)
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label)) + space +
			fill.Render(strings.Repeat("█", n)) +
			emptyStyle.Render(strings.Repeat("·", barW-n)) + space +
			valueStyle.Render(fmt.Sprintf("%3.0f", b.Value))
	}
	return strings.Join(lines, "\n")
}

// ColorForScore colors a 0-1 score: low scores are warm, high scores green.
func ColorForScore(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.8:
		return t.GreenBright
	case pct >= 0.6:
		return t.Green
	case pct >= 0.4:
		return t.Yellow
	default:
		return t.Orange
	}
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := min(max(int(v/peak*float64(len(blocks)-1)), 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// BarChart renders a vertical bar chart with a labelled y-axis. Narrow or
// short areas fall back to a sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	step := chartTickStep(peak)
	ceiling := math.Max(math.Ceil(peak/step)*step, step)

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	n := len(values)
	barW := min(max((width-yLabelW-1-(n-1))/n, 1), 6)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatChartLabel(ceiling)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))
		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > bottom:
				idx := min(max(int((v-bottom)/(top-bottom)*8), 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + n - 1
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└", yLabelW, "0") + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		var lb strings.Builder
		for i, l := range labels {
			if i > 0 {
				lb.WriteString(" ")
			}
			r := []rune(l)
			if len(r) > barW {
				r = r[:barW]
			}
			lb.WriteString(fmt.Sprintf("%-*s", barW, string(r)))
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + strings.TrimRight(lb.String(), " ")))
	}
	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

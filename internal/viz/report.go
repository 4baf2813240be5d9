package viz

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/collide/internal/scenario"
)

// EventTable renders crossings as an aligned table colored by band.
func EventTable(t Theme, records []scenario.Record) string {
	if len(records) == 0 {
		return mutedStyle(t).Render("no crossings")
	}

	wa, wb := len("A"), len("B")
	for _, r := range records {
		wa = max(wa, len(r.A))
		wb = max(wb, len(r.B))
	}

	head := headerStyle(t).MarginBottom(0)
	var sb strings.Builder
	sb.WriteString(head.Render(fmt.Sprintf("%10s  %-12s  %-*s  %-*s  %8s", "TIME", "KIND", wa, "A", wb, "B", "DIST")))
	for _, r := range records {
		kind := KindStyle(t, r.Kind).Render(fmt.Sprintf("%-12s", r.Kind))
		sb.WriteByte('\n')
		sb.WriteString(fmt.Sprintf("%10.4f  %s  %-*s  %-*s  %8.4f", r.Time, kind, wa, r.A, wb, r.B, r.Distance))
	}
	return sb.String()
}

// DistancePlot draws one series per pair label from samples. An empty string
// is returned when there is nothing to plot.
func DistancePlot(pairs []string, samples []scenario.Sample, width, height int) string {
	if len(pairs) == 0 || len(samples) < 2 {
		return ""
	}
	series := make([][]float64, len(pairs))
	for i := range pairs {
		series[i] = make([]float64, len(samples))
		for j, s := range samples {
			if i < len(s.Distances) {
				series[i][j] = float64(s.Distances[i])
			}
		}
	}
	caption := fmt.Sprintf("distance over t=[%.2f, %.2f]: %s",
		samples[0].Time, samples[len(samples)-1].Time, strings.Join(pairs, ", "))
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// Summary renders the metrics and attacher counters of a result.
func Summary(t Theme, r *scenario.Result) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}
	lines := []string{
		headerStyle(t).Render(r.Name),
		row("duration", fmt.Sprintf("%.2f", r.Duration)),
		row("crossings", fmt.Sprintf("%d", len(r.Crossings))),
		row("actions", fmt.Sprintf("%d", len(r.Actions))),
		row("ticks", fmt.Sprintf("%d (%d idle)", r.Stats.Ticks, r.Stats.Idle)),
		row("probes", fmt.Sprintf("%d", r.Stats.Probes)),
		row("iterations", fmt.Sprintf("%d (max %d)", r.Detector.Iterations, r.Detector.MaxIters)),
	}
	for _, name := range slices.Sorted(maps.Keys(r.Metrics)) {
		lines = append(lines, row(name, fmt.Sprintf("%.4g", r.Metrics[name])))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

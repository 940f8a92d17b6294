package renderer

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/evalmetrics/pkg/evaluate"
	"github.com/Sumatoshi-tech/evalmetrics/pkg/metrics"
)

const (
	scoreThresholdHigh   = 0.8
	scoreThresholdMedium = 0.5
	valuePrecision       = 4
)

// bestColumn is the metric used to highlight a threshold table.
const bestColumn = evaluate.NameF1Score

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func header(title string, samples int) string {
	return fmt.Sprintf("=== %s === (%s samples)", strings.ToUpper(title), humanize.Comma(int64(samples)))
}

func (r *Renderer) reportText(report evaluate.Report, samples int) string {
	parts := []string{header(report.Kind.String(), samples)}

	switch report.Kind {
	case evaluate.ReportHard:
		parts = append(parts, r.valuesTable(report.Hard.Values()), confusionTable(report.Hard.Confusion))
	case evaluate.ReportScored:
		parts = append(parts, r.valuesTable(report.Scored.Values()), confusionTable(report.Scored.Confusion))
	case evaluate.ReportTable:
		parts = append(parts, r.thresholdTable(*report.Table))
	}

	return strings.Join(parts, "\n\n")
}

func (r *Renderer) valuesText(kind string, samples int, values []evaluate.NamedValue) string {
	return header(kind, samples) + "\n\n" + r.valuesTable(values)
}

func (r *Renderer) valuesTable(values []evaluate.NamedValue) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Metric", "Value"})

	for _, nv := range values {
		tbl.AppendRow(table.Row{nv.Name, r.formatValue(nv.Name, nv.Value)})
	}

	return tbl.Render()
}

func confusionTable(cm evaluate.ConfusionMatrix) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"", "Predicted positive", "Predicted negative"})
	tbl.AppendRow(table.Row{"Actual positive", count(cm.TruePositives), count(cm.FalseNegatives)})
	tbl.AppendRow(table.Row{"Actual negative", count(cm.FalsePositives), count(cm.TrueNegatives)})
	tbl.AppendFooter(table.Row{"Total", count(cm.PredictedPositives()), count(cm.PredictedNegatives())})

	return tbl.Render()
}

func (r *Renderer) thresholdTable(t evaluate.ThresholdTable) string {
	tbl := newTable()

	hdr := make(table.Row, len(evaluate.TableColumns))
	for i, name := range evaluate.TableColumns {
		hdr[i] = name
	}

	tbl.AppendHeader(hdr)

	for _, row := range t.Rows() {
		values := row.Values()

		cells := make(table.Row, len(values))
		for i, nv := range values {
			cells[i] = r.formatValue(nv.Name, nv.Value)
		}

		tbl.AppendRow(cells)
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d thresholds", t.Len())})

	best, ok := t.Best(bestColumn)
	if !ok {
		return tbl.Render()
	}

	return fmt.Sprintf("%s\n\nBest %s: %s at threshold %s", tbl.Render(),
		bestColumn, formatFloat(best.F1Score), formatFloat(best.Threshold))
}

func catalogText(metas []metrics.MetricMeta) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Name", "Display name", "Type", "Description"})

	for _, meta := range metas {
		tbl.AppendRow(table.Row{meta.MetricName, meta.MetricDisplayName, meta.MetricType, meta.MetricDescription})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d metrics", len(metas))})

	return tbl.Render()
}

// formatValue formats a metric value, coloring bounded scores when enabled.
func (r *Renderer) formatValue(name string, v float64) string {
	text := formatFloat(v)

	if !r.color || !slices.Contains(evaluate.HardMetricNames, name) || math.IsNaN(v) {
		return text
	}

	c := color.New(scoreColor(v))
	c.EnableColor()

	return c.Sprint(text)
}

func scoreColor(score float64) color.Attribute {
	switch {
	case score >= scoreThresholdHigh:
		return color.FgGreen
	case score >= scoreThresholdMedium:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.*f", valuePrecision, v)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

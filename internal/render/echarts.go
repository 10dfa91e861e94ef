// Package render turns a chart recommendation plus its source table
// into a self-contained HTML preview using go-echarts, or a PNG file
// using gonum/plot.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wilson-adhikari/Insight-Bridge/internal/analysis"
	"github.com/wilson-adhikari/Insight-Bridge/internal/profile"
	"github.com/wilson-adhikari/Insight-Bridge/internal/recommend"
	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

const (
	previewWidth  = "900px"
	previewHeight = "600px"
)

// HTML renders rec against t and writes a standalone HTML document to w.
func HTML(w io.Writer, rec recommend.Recommendation, t *table.Table) error {
	switch rec.Chart {
	case recommend.ChartLine:
		return renderLine(w, rec, t)
	case recommend.ChartBar:
		return renderBar(w, rec, t)
	case recommend.ChartPie:
		return renderPie(w, rec, t)
	case recommend.ChartHistogram:
		return renderHistogram(w, rec, t)
	case recommend.ChartScatter:
		return renderScatter(w, rec, t)
	case recommend.ChartBox:
		return renderBox(w, rec, t)
	default:
		return fmt.Errorf("unsupported chart type %q", rec.Chart)
	}
}

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     previewWidth,
		Height:    previewHeight,
	})
}

func titleOpts(rec recommend.Recommendation) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{
		Title:    string(rec.Chart) + " preview",
		Subtitle: rec.Rationale,
	})
}

func renderLine(w io.Writer, rec recommend.Recommendation, t *table.Table) error {
	if len(rec.Columns) < 2 {
		return fmt.Errorf("line chart needs a datetime and a numeric column")
	}
	tc, err := t.ColumnIndex(rec.Columns[0])
	if err != nil {
		return err
	}
	vc, err := t.ColumnIndex(rec.Columns[1])
	if err != nil {
		return err
	}

	type point struct {
		ts  time.Time
		raw string
		val float64
	}
	var points []point
	for row := 0; row < t.NumRows(); row++ {
		ts, ok := profile.ParseDatetime(t.Cell(row, tc))
		if !ok {
			continue
		}
		val, ok := parseNumeric(t.Cell(row, vc))
		if !ok {
			continue
		}
		points = append(points, point{ts: ts, raw: t.Cell(row, tc), val: val})
	}
	if len(points) == 0 {
		return fmt.Errorf("no plottable rows for %s over %s", rec.Columns[1], rec.Columns[0])
	}
	sort.Slice(points, func(i, j int) bool { return points[i].ts.Before(points[j].ts) })

	x := make([]string, len(points))
	y := make([]opts.LineData, len(points))
	for i, p := range points {
		x[i] = p.raw
		y[i] = opts.LineData{Value: p.val}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts("Line preview"),
		titleOpts(rec),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(x).AddSeries(rec.Columns[1], y)
	return line.Render(w)
}

func renderBar(w io.Writer, rec recommend.Recommendation, t *table.Table) error {
	labels, sums, err := categoricalSums(t, rec)
	if err != nil {
		return err
	}

	y := make([]opts.BarData, len(sums))
	for i, v := range sums {
		y[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Bar preview"),
		titleOpts(rec),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries(rec.Columns[1], y,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar.Render(w)
}

func renderPie(w io.Writer, rec recommend.Recommendation, t *table.Table) error {
	labels, sums, err := categoricalSums(t, rec)
	if err != nil {
		return err
	}

	data := make([]opts.PieData, len(labels))
	for i := range labels {
		data[i] = opts.PieData{Name: labels[i], Value: sums[i]}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts("Pie preview"),
		titleOpts(rec),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries(rec.Columns[1], data)
	return pie.Render(w)
}

func renderHistogram(w io.Writer, rec recommend.Recommendation, t *table.Table) error {
	if len(rec.Columns) < 1 {
		return fmt.Errorf("histogram needs a numeric column")
	}
	vals, err := analysis.NumericValues(t, rec.Columns[0])
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return fmt.Errorf("no numeric values in column %q", rec.Columns[0])
	}

	labels, counts := binValues(vals)
	y := make([]opts.BarData, len(counts))
	for i, c := range counts {
		y[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Histogram preview"),
		titleOpts(rec),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries(rec.Columns[0], y)
	return bar.Render(w)
}

func renderScatter(w io.Writer, rec recommend.Recommendation, t *table.Table) error {
	if len(rec.Columns) < 2 {
		return fmt.Errorf("scatter chart needs two numeric columns")
	}
	xc, err := t.ColumnIndex(rec.Columns[0])
	if err != nil {
		return err
	}
	yc, err := t.ColumnIndex(rec.Columns[1])
	if err != nil {
		return err
	}

	var data []opts.ScatterData
	for row := 0; row < t.NumRows(); row++ {
		x, ok := parseNumeric(t.Cell(row, xc))
		if !ok {
			continue
		}
		y, ok := parseNumeric(t.Cell(row, yc))
		if !ok {
			continue
		}
		data = append(data, opts.ScatterData{Value: []interface{}{x, y}})
	}
	if len(data) == 0 {
		return fmt.Errorf("no plottable rows for %s against %s", rec.Columns[0], rec.Columns[1])
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		initOpts("Scatter preview"),
		titleOpts(rec),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: rec.Columns[0], NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: rec.Columns[1], NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("points", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter.Render(w)
}

func renderBox(w io.Writer, rec recommend.Recommendation, t *table.Table) error {
	if len(rec.Columns) < 1 {
		return fmt.Errorf("box chart needs a numeric column")
	}
	vals, err := analysis.NumericValues(t, rec.Columns[0])
	if err != nil {
		return err
	}
	if len(vals) == 0 {
		return fmt.Errorf("no numeric values in column %q", rec.Columns[0])
	}
	sort.Float64s(vals)

	five := []interface{}{
		vals[0],
		quantileSorted(vals, 0.25),
		quantileSorted(vals, 0.5),
		quantileSorted(vals, 0.75),
		vals[len(vals)-1],
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		initOpts("Box preview"),
		titleOpts(rec),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	box.SetXAxis([]string{rec.Columns[0]}).
		AddSeries("quartiles", []opts.BoxPlotData{{Value: five}})
	return box.Render(w)
}

// categoricalSums aggregates the numeric column per category label, in
// lexical label order so output is deterministic.
func categoricalSums(t *table.Table, rec recommend.Recommendation) ([]string, []float64, error) {
	if len(rec.Columns) < 2 {
		return nil, nil, fmt.Errorf("%s chart needs a categorical and a numeric column", rec.Chart)
	}
	cc, err := t.ColumnIndex(rec.Columns[0])
	if err != nil {
		return nil, nil, err
	}
	vc, err := t.ColumnIndex(rec.Columns[1])
	if err != nil {
		return nil, nil, err
	}

	sums := make(map[string]float64)
	for row := 0; row < t.NumRows(); row++ {
		label := t.Cell(row, cc)
		if profile.IsNull(label) {
			continue
		}
		v, ok := parseNumeric(t.Cell(row, vc))
		if !ok {
			continue
		}
		sums[label] += v
	}
	if len(sums) == 0 {
		return nil, nil, fmt.Errorf("no plottable rows for %s by %s", rec.Columns[1], rec.Columns[0])
	}

	labels := make([]string, 0, len(sums))
	for label := range sums {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]float64, len(labels))
	for i, label := range labels {
		out[i] = sums[label]
	}
	return labels, out, nil
}

// binValues buckets vals into equal-width bins, Sturges rule for the
// bin count.
func binValues(vals []float64) ([]string, []int) {
	mn, mx := vals[0], vals[0]
	for _, v := range vals {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	if mn == mx {
		return []string{fmt.Sprintf("%g", mn)}, []int{len(vals)}
	}

	bins := int(math.Ceil(math.Log2(float64(len(vals))))) + 1
	if bins < 1 {
		bins = 1
	}
	width := (mx - mn) / float64(bins)

	counts := make([]int, bins)
	for _, v := range vals {
		idx := int((v - mn) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	labels := make([]string, bins)
	for i := 0; i < bins; i++ {
		lo := mn + float64(i)*width
		labels[i] = fmt.Sprintf("%.4g-%.4g", lo, lo+width)
	}
	return labels, counts
}

// quantileSorted returns the p-quantile of an ascending slice using
// linear interpolation between closest ranks.
func quantileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func parseNumeric(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if profile.IsNull(trimmed) {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Package analysis computes descriptive statistics over profiled
// tables: per-column numeric summaries, correlation matrices, and
// grouped aggregates.
package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/wilson-adhikari/Insight-Bridge/internal/profile"
	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

// NumericSummary describes one numeric column: the classic describe()
// block plus variance, skewness and excess kurtosis.
type NumericSummary struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// Summarize computes a NumericSummary for every numeric column in dp.
// Columns with no parseable values are skipped.
func Summarize(t *table.Table, dp *profile.DatasetProfile) ([]NumericSummary, error) {
	var out []NumericSummary
	for _, cp := range dp.Columns {
		if cp.Type != profile.TypeNumeric {
			continue
		}
		vals, err := NumericValues(t, cp.Name)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			continue
		}
		out = append(out, summarizeColumn(cp.Name, vals))
	}
	return out, nil
}

func summarizeColumn(name string, vals []float64) NumericSummary {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s := NumericSummary{
		Column:   name,
		Count:    len(vals),
		Mean:     stat.Mean(vals, nil),
		Variance: stat.Variance(vals, nil),
		StdDev:   stat.StdDev(vals, nil),
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		Q1:       stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:       stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(vals) > 2 {
		s.Skewness = stat.Skew(vals, nil)
		s.Kurtosis = stat.ExKurtosis(vals, nil)
	}
	return s
}

// parseCell parses one raw cell as a float, reporting false for nulls
// and unparseable values.
func parseCell(raw string) (float64, bool) {
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

// NumericValues extracts the parseable float values of the named
// column, skipping nulls and unparseable cells.
func NumericValues(t *table.Table, column string) ([]float64, error) {
	col, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	vals := make([]float64, 0, t.NumRows())
	for _, raw := range t.ColumnValues(col) {
		trimmed := strings.TrimSpace(raw)
		if profile.IsNull(trimmed) {
			continue
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			vals = append(vals, f)
		}
	}
	return vals, nil
}

// GroupStat is one group's aggregate over a numeric column.
type GroupStat struct {
	Group  string  `json:"group"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GroupedSummary aggregates valueColumn per distinct value of
// groupColumn, in lexical group order.
func GroupedSummary(t *table.Table, groupColumn, valueColumn string) ([]GroupStat, error) {
	gc, err := t.ColumnIndex(groupColumn)
	if err != nil {
		return nil, err
	}
	vc, err := t.ColumnIndex(valueColumn)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]float64)
	for row := 0; row < t.NumRows(); row++ {
		key := strings.TrimSpace(t.Cell(row, gc))
		if profile.IsNull(key) {
			continue
		}
		raw := strings.TrimSpace(t.Cell(row, vc))
		if profile.IsNull(raw) {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		groups[key] = append(groups[key], f)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no numeric values to group for %q by %q", valueColumn, groupColumn)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]GroupStat, 0, len(keys))
	for _, k := range keys {
		vals := groups[k]
		sorted := make([]float64, len(vals))
		copy(sorted, vals)
		sort.Float64s(sorted)

		gs := GroupStat{
			Group:  k,
			Count:  len(vals),
			Mean:   stat.Mean(vals, nil),
			Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
			Min:    sorted[0],
			Max:    sorted[len(sorted)-1],
		}
		if len(vals) > 1 {
			gs.StdDev = stat.StdDev(vals, nil)
		}
		out = append(out, gs)
	}
	return out, nil
}

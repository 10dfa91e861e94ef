package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/wilson-adhikari/Insight-Bridge/internal/profile"
	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

// CorrelationMatrix holds pairwise Pearson correlations between the
// numeric columns of a dataset. Values[i][j] correlates Columns[i]
// with Columns[j].
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// Correlations computes the Pearson correlation matrix over the
// numeric columns of dp. Rows with a null or unparseable cell in any
// numeric column are excluded, so every pair is computed over the
// same sample.
func Correlations(t *table.Table, dp *profile.DatasetProfile) (*CorrelationMatrix, error) {
	var names []string
	for _, cp := range dp.Columns {
		if cp.Type == profile.TypeNumeric {
			names = append(names, cp.Name)
		}
	}
	if len(names) < 2 {
		return nil, fmt.Errorf("correlation needs at least two numeric columns, have %d", len(names))
	}

	series, err := completeRows(t, names)
	if err != nil {
		return nil, err
	}
	if len(series[0]) < 2 {
		return nil, fmt.Errorf("correlation needs at least two complete rows")
	}

	m := &CorrelationMatrix{
		Columns: names,
		Values:  make([][]float64, len(names)),
	}
	for i := range names {
		m.Values[i] = make([]float64, len(names))
		for j := range names {
			if i == j {
				m.Values[i][j] = 1
				continue
			}
			m.Values[i][j] = stat.Correlation(series[i], series[j], nil)
		}
	}
	return m, nil
}

// completeRows extracts the named columns as parallel float slices,
// keeping only rows where every column parses.
func completeRows(t *table.Table, names []string) ([][]float64, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		ci, err := t.ColumnIndex(n)
		if err != nil {
			return nil, err
		}
		idx[i] = ci
	}

	series := make([][]float64, len(names))
	for row := 0; row < t.NumRows(); row++ {
		vals := make([]float64, len(names))
		ok := true
		for i, ci := range idx {
			f, parsed := parseCell(t.Cell(row, ci))
			if !parsed {
				ok = false
				break
			}
			vals[i] = f
		}
		if !ok {
			continue
		}
		for i := range series {
			series[i] = append(series[i], vals[i])
		}
	}
	return series, nil
}

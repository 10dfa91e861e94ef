package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wilson-adhikari/Insight-Bridge/internal/analysis"
	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

// SaveHistogramPNG writes a histogram of the named numeric column to a
// PNG file under outputDir and returns the file path.
func SaveHistogramPNG(t *table.Table, column, outputDir string) (string, error) {
	vals, err := analysis.NumericValues(t, column)
	if err != nil {
		return "", err
	}
	if len(vals) == 0 {
		return "", fmt.Errorf("no numeric values in column %q", column)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	pts := make(plotter.Values, len(vals))
	copy(pts, vals)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution of %s", column)
	p.X.Label.Text = column
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(pts, histogramBins(len(vals)))
	if err != nil {
		return "", fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(h)

	path := filepath.Join(outputDir, fmt.Sprintf("hist_%s.png", column))
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save histogram: %w", err)
	}
	return path, nil
}

// histogramBins applies the Sturges rule with a floor of one bin.
func histogramBins(n int) int {
	bins := 1
	for v := n; v > 1; v /= 2 {
		bins++
	}
	return bins
}

// profilecsv profiles a CSV file from the command line, prints the
// column profile and chart recommendations, and can render the top
// recommendation to an HTML or PNG file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wilson-adhikari/Insight-Bridge/internal/analysis"
	"github.com/wilson-adhikari/Insight-Bridge/internal/ingest"
	"github.com/wilson-adhikari/Insight-Bridge/internal/profile"
	"github.com/wilson-adhikari/Insight-Bridge/internal/recommend"
	"github.com/wilson-adhikari/Insight-Bridge/internal/render"
	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

var (
	configFile = flag.String("config", "", "Path to a JSON config file overriding engine thresholds")
	sampleRows = flag.Int("sample", 0, "Sample row limit (0 uses the configured default)")
	jsonOut    = flag.Bool("json", false, "Emit the profile and recommendations as JSON")
	chartOut   = flag.String("chart", "", "Write the top recommendation as an HTML chart to this file")
	pngOut     = flag.String("png", "", "Write a histogram PNG for the named numeric column (format column=dir)")
	stats      = flag.Bool("stats", false, "Print extended numeric summaries")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := recommend.EmptyConfig()
	if *configFile != "" {
		var err error
		cfg, err = recommend.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *sampleRows > 0 {
		cfg.SampleRowLimit = sampleRows
	}

	t, err := ingest.ReadCSVFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to read csv: %v", err)
	}

	profiler := profile.NewProfiler(cfg.GetSampleRowLimit())
	dp, err := profiler.Profile(t)
	if err != nil {
		log.Fatalf("failed to profile dataset: %v", err)
	}

	engine := recommend.NewEngine(cfg)
	recs := engine.Recommend(dp)

	if *jsonOut {
		out := struct {
			Profile         *profile.DatasetProfile    `json:"profile"`
			Recommendations []recommend.Recommendation `json:"recommendations"`
		}{dp, recs}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatalf("failed to encode output: %v", err)
		}
	} else {
		printProfile(dp)
		printRecommendations(recs)
		if *stats {
			printStats(t, dp)
		}
	}

	if *chartOut != "" {
		if len(recs) == 0 {
			log.Fatal("no recommendations to render")
		}
		f, err := os.Create(*chartOut)
		if err != nil {
			log.Fatalf("failed to create chart file: %v", err)
		}
		defer f.Close()
		if err := render.HTML(f, recs[0], t); err != nil {
			log.Fatalf("failed to render chart: %v", err)
		}
		fmt.Printf("wrote %s chart to %s\n", recs[0].Chart, *chartOut)
	}

	if *pngOut != "" {
		col, dir, ok := splitPNGSpec(*pngOut)
		if !ok {
			log.Fatalf("invalid -png value %q, want column=dir", *pngOut)
		}
		path, err := render.SaveHistogramPNG(t, col, dir)
		if err != nil {
			log.Fatalf("failed to write png: %v", err)
		}
		fmt.Printf("wrote histogram of %s to %s\n", col, path)
	}
}

func splitPNGSpec(s string) (column, file string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], i > 0 && i < len(s)-1
		}
	}
	return "", "", false
}

func printProfile(dp *profile.DatasetProfile) {
	fmt.Printf("dataset %s: %d rows", dp.Dataset, dp.RowCount)
	if dp.Sampled {
		fmt.Printf(" (profiled %d sampled rows)", dp.SampledRows)
	}
	fmt.Println()

	for _, c := range dp.Columns {
		fmt.Printf("  %-20s %-12s nulls=%.1f%% distinct=%d", c.Name, c.Type, c.NullRatio*100, c.DistinctCount)
		if c.Min != nil && c.Max != nil {
			fmt.Printf(" range=[%g, %g]", *c.Min, *c.Max)
		}
		if c.MinTime != nil && c.MaxTime != nil {
			fmt.Printf(" range=[%s, %s]", c.MinTime.Format("2006-01-02"), c.MaxTime.Format("2006-01-02"))
		}
		if c.Monotonic {
			fmt.Print(" monotonic")
		}
		if c.Degraded {
			fmt.Print(" DEGRADED")
		}
		fmt.Println()
	}
	for _, w := range dp.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}

func printRecommendations(recs []recommend.Recommendation) {
	if len(recs) == 0 {
		fmt.Println("no chart recommendations")
		return
	}
	fmt.Println("recommendations:")
	for i, r := range recs {
		fmt.Printf("  %d. %-10s %.2f %v  %s\n", i+1, r.Chart, r.Confidence, r.Columns, r.Rationale)
	}
}

func printStats(t *table.Table, dp *profile.DatasetProfile) {
	summaries, err := analysis.Summarize(t, dp)
	if err != nil {
		log.Fatalf("failed to summarize: %v", err)
	}
	if len(summaries) == 0 {
		return
	}
	fmt.Println("numeric summaries:")
	for _, s := range summaries {
		fmt.Printf("  %-20s n=%d mean=%.4g std=%.4g min=%.4g q1=%.4g median=%.4g q3=%.4g max=%.4g skew=%.3f kurt=%.3f\n",
			s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Skewness, s.Kurtosis)
	}

	corr, err := analysis.Correlations(t, dp)
	if err != nil {
		return
	}
	fmt.Println("correlations:")
	for i, a := range corr.Columns {
		for j, b := range corr.Columns {
			if j <= i {
				continue
			}
			fmt.Printf("  %s / %s: %.3f\n", a, b, corr.Values[i][j])
		}
	}
}

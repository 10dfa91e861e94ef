// Package recommend ranks chart types for a profiled dataset. Rules
// fire independently per column or column pair; the batch is ordered
// by confidence with ties broken by rule declaration order.
package recommend

import (
	"fmt"
	"sort"

	"github.com/wilson-adhikari/Insight-Bridge/internal/profile"
)

// ChartType identifies one of the supported chart families.
type ChartType string

const (
	ChartLine      ChartType = "line"
	ChartBar       ChartType = "bar"
	ChartHistogram ChartType = "histogram"
	ChartScatter   ChartType = "scatter"
	ChartPie       ChartType = "pie"
	ChartBox       ChartType = "box"
)

// Recommendation is one suggested chart for a dataset profile.
// Confidence values are comparable within a single batch only.
type Recommendation struct {
	Chart      ChartType `json:"chart_type"`
	Columns    []string  `json:"columns"`
	Confidence float64   `json:"confidence"`
	Rationale  string    `json:"rationale"`
}

// rule produces zero or more candidate recommendations from a profile.
type rule func(cfg *Config, dp *profile.DatasetProfile) []Recommendation

// Engine evaluates the rule set against dataset profiles. It holds no
// mutable state; one engine may serve concurrent callers.
type Engine struct {
	cfg   *Config
	rules []rule
}

// NewEngine returns an engine using cfg. A nil cfg gets all defaults.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = EmptyConfig()
	}
	return &Engine{
		cfg: cfg,
		// Declaration order is the tie-break order for equal
		// confidences, so it is part of the contract.
		rules: []rule{
			lineRule,
			barRule,
			pieRule,
			histogramRule,
			scatterRule,
			boxRule,
		},
	}
}

// Config returns the engine's active configuration.
func (e *Engine) Config() *Config { return e.cfg }

// Recommend evaluates all rules against dp and returns the surviving
// batch, highest confidence first. Profiles with no usable columns
// produce an empty batch, not an error.
func (e *Engine) Recommend(dp *profile.DatasetProfile) []Recommendation {
	recs := []Recommendation{}
	for _, r := range e.rules {
		for _, rec := range r(e.cfg, dp) {
			rec.Confidence = clamp01(rec.Confidence)
			if rec.Confidence < e.cfg.GetConfidenceFloor() {
				continue
			}
			recs = append(recs, rec)
		}
	}

	// Stable sort keeps rule declaration order for equal confidences.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// usable filters out degraded columns; they carry no trustworthy type
// information and must not drive recommendations.
func usable(dp *profile.DatasetProfile) []profile.ColumnProfile {
	cols := make([]profile.ColumnProfile, 0, len(dp.Columns))
	for _, c := range dp.Columns {
		if c.Degraded {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

func columnsOfType(dp *profile.DatasetProfile, t profile.SemanticType) []profile.ColumnProfile {
	var out []profile.ColumnProfile
	for _, c := range usable(dp) {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// lineRule: a datetime column plus a numeric column suggests a time
// series. Monotonic time raises confidence, missing values lower it.
func lineRule(cfg *Config, dp *profile.DatasetProfile) []Recommendation {
	var recs []Recommendation
	for _, dt := range columnsOfType(dp, profile.TypeDatetime) {
		for _, num := range columnsOfType(dp, profile.TypeNumeric) {
			conf := 0.75 + 0.1*(1-dt.NullRatio)
			if dt.Monotonic {
				conf += 0.15
			}
			recs = append(recs, Recommendation{
				Chart:      ChartLine,
				Columns:    []string{dt.Name, num.Name},
				Confidence: conf,
				Rationale:  fmt.Sprintf("%s over time %s", num.Name, dt.Name),
			})
		}
	}
	return recs
}

// barRule: a low-cardinality categorical column against a numeric
// column. Fewer categories compare better side by side.
func barRule(cfg *Config, dp *profile.DatasetProfile) []Recommendation {
	maxCats := cfg.GetBarMaxCategories()
	var recs []Recommendation
	for _, cat := range columnsOfType(dp, profile.TypeCategorical) {
		if cat.DistinctCount < 1 || cat.DistinctCount > maxCats {
			continue
		}
		for _, num := range columnsOfType(dp, profile.TypeNumeric) {
			conf := 0.5 + 0.4*(1-float64(cat.DistinctCount)/float64(maxCats))
			recs = append(recs, Recommendation{
				Chart:      ChartBar,
				Columns:    []string{cat.Name, num.Name},
				Confidence: conf,
				Rationale:  fmt.Sprintf("%s compared across %d %s groups", num.Name, cat.DistinctCount, cat.Name),
			})
		}
	}
	return recs
}

// pieRule: very few categories with a non-negative numeric column that
// can read as parts of a whole. Suppressed entirely above the cutoff.
func pieRule(cfg *Config, dp *profile.DatasetProfile) []Recommendation {
	maxCats := cfg.GetPieMaxCategories()
	var recs []Recommendation
	for _, cat := range columnsOfType(dp, profile.TypeCategorical) {
		if cat.DistinctCount < 2 || cat.DistinctCount > maxCats {
			continue
		}
		for _, num := range columnsOfType(dp, profile.TypeNumeric) {
			if num.Min == nil || *num.Min < 0 {
				// Negative parts cannot sum to a meaningful whole.
				continue
			}
			conf := 0.4 + 0.3*(1-float64(cat.DistinctCount)/float64(maxCats))
			recs = append(recs, Recommendation{
				Chart:      ChartPie,
				Columns:    []string{cat.Name, num.Name},
				Confidence: conf,
				Rationale:  fmt.Sprintf("share of %s across %d %s groups", num.Name, cat.DistinctCount, cat.Name),
			})
		}
	}
	return recs
}

// histogramRule: every numeric column gets a histogram fallback at a
// fixed baseline confidence.
func histogramRule(cfg *Config, dp *profile.DatasetProfile) []Recommendation {
	var recs []Recommendation
	for _, num := range columnsOfType(dp, profile.TypeNumeric) {
		recs = append(recs, Recommendation{
			Chart:      ChartHistogram,
			Columns:    []string{num.Name},
			Confidence: cfg.GetHistogramBaseline(),
			Rationale:  fmt.Sprintf("distribution of %s", num.Name),
		})
	}
	return recs
}

// scatterRule: pairs of numeric columns. More rows make the point
// cloud more informative.
func scatterRule(cfg *Config, dp *profile.DatasetProfile) []Recommendation {
	nums := columnsOfType(dp, profile.TypeNumeric)
	var recs []Recommendation
	for i := 0; i < len(nums); i++ {
		for j := i + 1; j < len(nums); j++ {
			density := float64(dp.RowCount) / 1000.0
			if density > 1 {
				density = 1
			}
			recs = append(recs, Recommendation{
				Chart:      ChartScatter,
				Columns:    []string{nums[i].Name, nums[j].Name},
				Confidence: 0.3 + 0.4*density,
				Rationale:  fmt.Sprintf("%s against %s", nums[i].Name, nums[j].Name),
			})
		}
	}
	return recs
}

// boxRule: a numeric column whose value range is wide relative to its
// distinct count likely carries outliers worth showing.
func boxRule(cfg *Config, dp *profile.DatasetProfile) []Recommendation {
	var recs []Recommendation
	for _, num := range columnsOfType(dp, profile.TypeNumeric) {
		if num.Min == nil || num.Max == nil || num.DistinctCount == 0 {
			continue
		}
		spread := (*num.Max - *num.Min) / float64(num.DistinctCount)
		if spread <= cfg.GetBoxSpreadRatio() {
			continue
		}
		recs = append(recs, Recommendation{
			Chart:      ChartBox,
			Columns:    []string{num.Name},
			Confidence: 0.45,
			Rationale:  fmt.Sprintf("%s has a wide value spread; quartiles and outliers", num.Name),
		})
	}
	return recs
}

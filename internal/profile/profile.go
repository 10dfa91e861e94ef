// Package profile computes per-column type and statistics summaries
// from an in-memory table. Profiles feed the recommendation engine.
package profile

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

// DefaultSampleLimit caps how many rows are inspected per profiling
// pass. Above this, rows are sampled by stride so large imports stay
// bounded in latency.
const DefaultSampleLimit = 50000

// Inference thresholds. Parse-success fractions below these mean the
// column is not that type.
const (
	numericParseFraction  = 0.95
	datetimeParseFraction = 0.7
	// Non-null distinct ratio at or below this makes a string column
	// categorical rather than free text.
	categoricalDistinctRatio = 0.2
)

// nullLiterals are cell values treated as missing, compared lowercase.
var nullLiterals = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"nan":  true,
	"none": true,
}

// datetimeLayouts are tried in order when parsing datetime candidates.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02 Jan 2006",
}

// boolLiterals are the recognised boolean spellings, compared lowercase.
var boolLiterals = map[string]bool{
	"true": true, "false": true,
	"yes": true, "no": true,
	"1": true, "0": true,
	"t": true, "f": true,
}

// Profiler computes DatasetProfiles. It holds no mutable state across
// calls; distinct datasets may be profiled concurrently.
type Profiler struct {
	sampleLimit int
}

// NewProfiler returns a profiler with the given row-sample limit.
// Limits of zero or less fall back to DefaultSampleLimit.
func NewProfiler(sampleLimit int) *Profiler {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	return &Profiler{sampleLimit: sampleLimit}
}

// Profile inspects t and produces one ColumnProfile per column.
// Columns that cannot be read are degraded to text and recorded as
// warnings rather than aborting the pass. Tables with zero rows or
// columns return ErrEmptyDataset.
func (p *Profiler) Profile(t *table.Table) (*DatasetProfile, error) {
	if t.NumRows() == 0 || t.NumCols() == 0 {
		return nil, fmt.Errorf("cannot profile %q: %w", t.Name(), ErrEmptyDataset)
	}

	stride := 1
	if t.NumRows() > p.sampleLimit {
		stride = int(math.Ceil(float64(t.NumRows()) / float64(p.sampleLimit)))
	}

	dp := &DatasetProfile{
		Dataset:  t.Name(),
		RowCount: t.NumRows(),
		Sampled:  stride > 1,
		Columns:  make([]ColumnProfile, 0, t.NumCols()),
	}

	for col, name := range t.Columns() {
		values := sampleColumn(t, col, stride)
		if dp.SampledRows == 0 {
			dp.SampledRows = len(values)
		}

		cp, err := profileColumn(name, values)
		if err != nil {
			log.Printf("profiling degraded for column %q: %v", name, err)
			dp.Warnings = append(dp.Warnings, err.Error())
		}
		dp.Columns = append(dp.Columns, cp)
	}

	return dp, nil
}

// sampleColumn collects every stride-th cell of the column.
func sampleColumn(t *table.Table, col, stride int) []string {
	values := make([]string, 0, t.NumRows()/stride+1)
	for row := 0; row < t.NumRows(); row += stride {
		values = append(values, t.Cell(row, col))
	}
	return values
}

// profileColumn computes one ColumnProfile over the sampled values.
// A non-nil error is always a *ProfilingError and comes with a usable
// degraded profile.
func profileColumn(name string, values []string) (ColumnProfile, error) {
	cp := ColumnProfile{Name: name, Type: TypeText}

	nonNull := make([]string, 0, len(values))
	distinct := make(map[string]struct{})
	nulls := 0
	readable := true

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if nullLiterals[strings.ToLower(trimmed)] {
			nulls++
			continue
		}
		if !utf8.ValidString(trimmed) {
			readable = false
			continue
		}
		nonNull = append(nonNull, trimmed)
		distinct[trimmed] = struct{}{}
	}

	cp.NullRatio = float64(nulls) / float64(len(values))
	cp.DistinctCount = len(distinct)

	if !readable {
		cp.Degraded = true
		return cp, &ProfilingError{Column: name, Err: fmt.Errorf("column contains malformed encoding")}
	}
	if len(nonNull) == 0 {
		// All nulls. Nothing to infer from.
		return cp, nil
	}

	cp.Type = inferType(nonNull, len(distinct))

	switch cp.Type {
	case TypeNumeric:
		fillNumericStats(&cp, nonNull)
	case TypeDatetime:
		fillDatetimeStats(&cp, nonNull)
	}

	return cp, nil
}

// inferType applies the ordered semantic type checks: datetime, then
// boolean, then numeric, then categorical versus text by distinct
// ratio. Numeric columns with few distinct values stay numeric.
func inferType(nonNull []string, distinctCount int) SemanticType {
	if parseFraction(nonNull, isDatetime) > datetimeParseFraction {
		return TypeDatetime
	}

	if distinctCount <= 2 && allMatch(nonNull, isBoolean) {
		return TypeBoolean
	}

	if parseFraction(nonNull, isNumeric) >= numericParseFraction {
		return TypeNumeric
	}

	ratio := float64(distinctCount) / float64(len(nonNull))
	if ratio <= categoricalDistinctRatio {
		return TypeCategorical
	}
	return TypeText
}

func parseFraction(values []string, parse func(string) bool) float64 {
	ok := 0
	for _, v := range values {
		if parse(v) {
			ok++
		}
	}
	return float64(ok) / float64(len(values))
}

func allMatch(values []string, parse func(string) bool) bool {
	for _, v := range values {
		if !parse(v) {
			return false
		}
	}
	return true
}

func isNumeric(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isBoolean(v string) bool {
	return boolLiterals[strings.ToLower(v)]
}

func isDatetime(v string) bool {
	_, ok := parseDatetime(v)
	return ok
}

func parseDatetime(v string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// fillNumericStats records min, max, and monotonicity over the
// parseable values in sample order.
func fillNumericStats(cp *ColumnProfile, nonNull []string) {
	parsed := make([]float64, 0, len(nonNull))
	for _, v := range nonNull {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			parsed = append(parsed, f)
		}
	}
	if len(parsed) == 0 {
		return
	}

	mn, mx := parsed[0], parsed[0]
	for _, f := range parsed[1:] {
		if f < mn {
			mn = f
		}
		if f > mx {
			mx = f
		}
	}
	cp.Min = &mn
	cp.Max = &mx
	cp.Monotonic = monotonicFloats(parsed)
}

func fillDatetimeStats(cp *ColumnProfile, nonNull []string) {
	parsed := make([]time.Time, 0, len(nonNull))
	for _, v := range nonNull {
		if ts, ok := parseDatetime(v); ok {
			parsed = append(parsed, ts)
		}
	}
	if len(parsed) == 0 {
		return
	}

	mn, mx := parsed[0], parsed[0]
	for _, ts := range parsed[1:] {
		if ts.Before(mn) {
			mn = ts
		}
		if ts.After(mx) {
			mx = ts
		}
	}
	cp.MinTime = &mn
	cp.MaxTime = &mx
	cp.Monotonic = monotonicTimes(parsed)
}

// monotonicFloats reports whether the sequence is entirely
// non-decreasing or entirely non-increasing.
func monotonicFloats(vals []float64) bool {
	if len(vals) < 2 {
		return true
	}
	nonDec, nonInc := true, true
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1] {
			nonDec = false
		}
		if vals[i] > vals[i-1] {
			nonInc = false
		}
	}
	return nonDec || nonInc
}

func monotonicTimes(vals []time.Time) bool {
	if len(vals) < 2 {
		return true
	}
	nonDec, nonInc := true, true
	for i := 1; i < len(vals); i++ {
		if vals[i].Before(vals[i-1]) {
			nonDec = false
		}
		if vals[i].After(vals[i-1]) {
			nonInc = false
		}
	}
	return nonDec || nonInc
}

// IsNull reports whether a raw cell value counts as missing.
func IsNull(v string) bool {
	return nullLiterals[strings.ToLower(strings.TrimSpace(v))]
}

// ParseDatetime parses a cell with the profiler's datetime layouts.
func ParseDatetime(v string) (time.Time, bool) {
	return parseDatetime(strings.TrimSpace(v))
}

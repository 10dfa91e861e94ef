package profile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

func buildTable(t *testing.T, cols []string, rows [][]string) *table.Table {
	t.Helper()
	tbl := table.New("test", cols)
	for _, r := range rows {
		tbl.AppendRow(r)
	}
	return tbl
}

func TestInferTypes(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   SemanticType
	}{
		{"integers", []string{"1", "2", "3", "4"}, TypeNumeric},
		{"floats", []string{"1.5", "2.25", "-3.0", "4"}, TypeNumeric},
		{"dates", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, TypeDatetime},
		{"timestamps", []string{"2024-01-01T10:00:00Z", "2024-01-02T10:00:00Z"}, TypeDatetime},
		{"booleans", []string{"true", "false", "true"}, TypeBoolean},
		{"yes no", []string{"yes", "no", "yes", "no"}, TypeBoolean},
		{"one zero", []string{"1", "0", "1", "0"}, TypeBoolean},
		{"free text", []string{"alpha", "beta", "gamma", "delta", "epsilon"}, TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]string, len(tt.values))
			for i, v := range tt.values {
				rows[i] = []string{v}
			}
			tbl := buildTable(t, []string{"col"}, rows)

			dp, err := NewProfiler(0).Profile(tbl)
			if err != nil {
				t.Fatalf("Profile failed: %v", err)
			}
			if got := dp.Columns[0].Type; got != tt.want {
				t.Errorf("type = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferCategoricalByDistinctRatio(t *testing.T) {
	// 100 rows drawn from 3 labels: distinct ratio 0.03, well under
	// the categorical cutoff.
	var rows [][]string
	labels := []string{"red", "green", "blue"}
	for i := 0; i < 100; i++ {
		rows = append(rows, []string{labels[i%3]})
	}
	tbl := buildTable(t, []string{"colour"}, rows)

	dp, err := NewProfiler(0).Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	cp := dp.Columns[0]
	if cp.Type != TypeCategorical {
		t.Errorf("type = %q, want categorical", cp.Type)
	}
	if cp.DistinctCount != 3 {
		t.Errorf("distinct = %d, want 3", cp.DistinctCount)
	}
}

func TestNumericWithLowDistinctStaysNumeric(t *testing.T) {
	// Repeated numeric codes must resolve toward numeric, not
	// categorical.
	var rows [][]string
	for i := 0; i < 50; i++ {
		rows = append(rows, []string{fmt.Sprintf("%d", 10+(i%3)*10)})
	}
	tbl := buildTable(t, []string{"code"}, rows)

	dp, err := NewProfiler(0).Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if got := dp.Columns[0].Type; got != TypeNumeric {
		t.Errorf("type = %q, want numeric", got)
	}
}

func TestNullRatioAndDistinct(t *testing.T) {
	tbl := buildTable(t, []string{"v"}, [][]string{
		{"10"}, {""}, {"20"}, {"NA"}, {"10"},
	})

	dp, err := NewProfiler(0).Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	cp := dp.Columns[0]
	if cp.NullRatio != 0.4 {
		t.Errorf("null ratio = %v, want 0.4", cp.NullRatio)
	}
	if cp.DistinctCount != 2 {
		t.Errorf("distinct = %d, want 2", cp.DistinctCount)
	}
}

func TestMonotonicAndBounds(t *testing.T) {
	tbl := buildTable(t, []string{"ts", "v", "jitter"}, [][]string{
		{"2024-01-01", "1", "5"},
		{"2024-01-02", "2", "3"},
		{"2024-01-03", "3", "9"},
	})

	dp, err := NewProfiler(0).Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	ts := dp.Column("ts")
	if !ts.Monotonic {
		t.Error("expected datetime column to be monotonic")
	}
	if ts.MinTime == nil || ts.MaxTime == nil {
		t.Fatal("expected datetime bounds to be set")
	}
	if !ts.MinTime.Before(*ts.MaxTime) {
		t.Error("MinTime not before MaxTime")
	}

	v := dp.Column("v")
	if !v.Monotonic {
		t.Error("expected increasing numeric column to be monotonic")
	}
	if v.Min == nil || *v.Min != 1 {
		t.Errorf("Min = %v, want 1", v.Min)
	}
	if v.Max == nil || *v.Max != 3 {
		t.Errorf("Max = %v, want 3", v.Max)
	}

	if dp.Column("jitter").Monotonic {
		t.Error("expected unordered numeric column to be non-monotonic")
	}
}

func TestSamplingBoundsWork(t *testing.T) {
	tbl := table.New("big", []string{"v"})
	for i := 0; i < 1000; i++ {
		tbl.AppendRow([]string{fmt.Sprintf("%d", i)})
	}

	dp, err := NewProfiler(100).Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if !dp.Sampled {
		t.Error("expected Sampled = true")
	}
	if dp.SampledRows > 100 {
		t.Errorf("SampledRows = %d, want <= 100", dp.SampledRows)
	}
	if dp.RowCount != 1000 {
		t.Errorf("RowCount = %d, want 1000", dp.RowCount)
	}
}

func TestEmptyDataset(t *testing.T) {
	tbl := table.New("empty", []string{"a"})
	_, err := NewProfiler(0).Profile(tbl)
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}

	noCols := table.New("nocols", nil)
	noCols.AppendRow(nil)
	if _, err := NewProfiler(0).Profile(noCols); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("error = %v, want ErrEmptyDataset", err)
	}
}

func TestMalformedColumnDegrades(t *testing.T) {
	tbl := buildTable(t, []string{"good", "bad"}, [][]string{
		{"1", "ok"},
		{"2", string([]byte{0xff, 0xfe})},
		{"3", "ok"},
	})

	dp, err := NewProfiler(0).Profile(tbl)
	if err != nil {
		t.Fatalf("Profile should not abort on a bad column: %v", err)
	}

	bad := dp.Column("bad")
	if !bad.Degraded {
		t.Error("expected bad column to be degraded")
	}
	if bad.Type != TypeText {
		t.Errorf("degraded type = %q, want text", bad.Type)
	}
	if len(dp.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(dp.Warnings))
	}
	if got := dp.Column("good").Type; got != TypeNumeric {
		t.Errorf("good column type = %q, want numeric", got)
	}
}

func TestAllNullColumn(t *testing.T) {
	tbl := buildTable(t, []string{"v"}, [][]string{{""}, {"null"}, {"NaN"}})

	dp, err := NewProfiler(0).Profile(tbl)
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	cp := dp.Columns[0]
	if cp.NullRatio != 1.0 {
		t.Errorf("null ratio = %v, want 1.0", cp.NullRatio)
	}
	if cp.Type != TypeText {
		t.Errorf("type = %q, want text fallback", cp.Type)
	}
}

func TestProfilingErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	pe := &ProfilingError{Column: "c", Err: inner}
	if !errors.Is(pe, inner) {
		t.Error("ProfilingError should unwrap to its cause")
	}
}

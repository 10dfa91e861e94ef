package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendRowPadsAndTruncates(t *testing.T) {
	tbl := New("demo", []string{"a", "b", "c"})
	tbl.AppendRow([]string{"1", "2"})
	tbl.AppendRow([]string{"1", "2", "3", "4"})

	if got := tbl.NumRows(); got != 2 {
		t.Fatalf("NumRows = %d, want 2", got)
	}
	if got := tbl.Cell(0, 2); got != "" {
		t.Errorf("short row not padded: cell = %q, want empty", got)
	}
	if got := tbl.Cell(1, 2); got != "3" {
		t.Errorf("cell = %q, want %q", got, "3")
	}
}

func TestColumnIndex(t *testing.T) {
	tbl := New("demo", []string{"first", "second"})

	idx, err := tbl.ColumnIndex("second")
	if err != nil {
		t.Fatalf("ColumnIndex failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}

	if _, err := tbl.ColumnIndex("missing"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestColumnValues(t *testing.T) {
	tbl := New("demo", []string{"x", "y"})
	tbl.AppendRow([]string{"1", "a"})
	tbl.AppendRow([]string{"2", "b"})

	want := []string{"a", "b"}
	if diff := cmp.Diff(want, tbl.ColumnValues(1)); diff != "" {
		t.Errorf("ColumnValues mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnsReturnsCopy(t *testing.T) {
	tbl := New("demo", []string{"x"})
	cols := tbl.Columns()
	cols[0] = "mutated"
	if tbl.Columns()[0] != "x" {
		t.Error("Columns exposed internal slice")
	}
}

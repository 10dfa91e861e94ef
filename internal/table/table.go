// Package table holds the in-memory tabular structure that the import
// layer hands to the profiler. It performs no file I/O itself.
package table

import "fmt"

// Table is a named grid of string cells with a header row. Cells keep
// their raw textual form; semantic interpretation happens in the
// profile package.
type Table struct {
	name    string
	columns []string
	rows    [][]string
}

// New creates an empty table with the given column names.
func New(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{name: name, columns: cols}
}

// Name returns the table's logical name.
func (t *Table) Name() string { return t.name }

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// AppendRow adds a row, padding short rows with empty cells and
// truncating long ones so every row matches the header width.
func (t *Table) AppendRow(cells []string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Cell returns the raw cell at (row, col).
func (t *Table) Cell(row, col int) string {
	return t.rows[row][col]
}

// ColumnIndex returns the index of the named column, or an error if the
// table has no such column.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("table %q has no column %q", t.name, name)
}

// ColumnValues returns all raw values of the column at index col, in
// row order.
func (t *Table) ColumnValues(col int) []string {
	vals := make([]string, len(t.rows))
	for i, row := range t.rows {
		vals[i] = row[col]
	}
	return vals
}

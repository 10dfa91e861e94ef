// Package ingest reads external tabular files into table.Table values.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wilson-adhikari/Insight-Bridge/internal/table"
)

// candidate delimiters tried by sniffDelimiter, in preference order.
var delimiters = []rune{',', ';', '\t'}

// ReadCSV parses CSV data from r into a table named name. The first
// record is treated as the header row. The delimiter is sniffed from
// the header line (comma, semicolon, or tab). Ragged rows are padded or
// truncated to the header width rather than rejected.
func ReadCSV(name string, r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv input: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("csv input is empty")
	}

	text := string(data)
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1 // row widths are normalised by the table

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	t := table.New(name, header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		t.AppendRow(record)
	}
	return t, nil
}

// ReadCSVFile opens path and parses it with ReadCSV. The table is named
// after the file's base name without extension.
func ReadCSVFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return ReadCSV(name, f)
}

// sniffDelimiter picks the delimiter that splits the first line into
// the most fields. Comma wins ties.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	best := ','
	bestCount := strings.Count(line, ",")
	for _, d := range delimiters[1:] {
		if c := strings.Count(line, string(d)); c > bestCount {
			best = d
			bestCount = c
		}
	}
	return best
}

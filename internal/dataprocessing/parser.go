package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// rawTable holds an untyped tabular file: a header lookup plus string rows.
// Rows may be ragged; cell access via (t *rawTable) cell is bounds-checked.
type rawTable struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// readTable reads a delimited or spreadsheet source file into a rawTable,
// dispatching on the file extension.
func readTable(path string) (*rawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	default:
		return readCSV(path)
	}
}

// readCSV reads a comma-delimited file. The first row is the header.
func readCSV(path string) (*rawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // catalog exports are often ragged

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	return newRawTable(records[0], records[1:]), nil
}

// readXLSX reads the first sheet of a spreadsheet export.
func readXLSX(path string) (*rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read XLSX rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty XLSX sheet")
	}

	return newRawTable(rows[0], rows[1:]), nil
}

// newRawTable builds the header index. Header names are trimmed and
// lower-cased so column lookups are insensitive to export quirks.
func newRawTable(header []string, rows [][]string) *rawTable {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return &rawTable{header: header, index: index, rows: rows}
}

// hasColumn reports whether the table exposes the named column.
func (t *rawTable) hasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// cell returns the trimmed value of the named column in the given row, or ""
// when the column is absent or the row is too short.
func (t *rawTable) cell(row []string, name string) string {
	idx, ok := t.index[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

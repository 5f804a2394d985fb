package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelWriter writes summary tables into a single XLSX workbook, one sheet
// per table.
type ExcelWriter struct {
	baseDir string
}

// NewExcelWriter creates a new Excel writer rooted at baseDir.
func NewExcelWriter(baseDir string) *ExcelWriter {
	return &ExcelWriter{baseDir: baseDir}
}

// WriteWorkbook writes all tables to <baseDir>/<name>.xlsx. Sheet names are
// the table names truncated to Excel's 31-character limit.
func (w *ExcelWriter) WriteWorkbook(name string, tables []Table) error {
	fullPath := filepath.Join(w.baseDir, name+".xlsx")

	slog.Info("Writing XLSX workbook",
		slog.String("path", fullPath),
		slog.Int("sheet_count", len(tables)))

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, table := range tables {
		sheet := sheetName(table.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, table); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	// Drop the default sheet excelize creates with the workbook
	if len(tables) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to delete default sheet: %w", err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, table Table) error {
	headerRow := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}

	for i, record := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName fits a table name into the 31-character sheet name limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

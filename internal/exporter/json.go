package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// JSONWriter writes summary tables as JSON files, each record an object
// keyed by header.
type JSONWriter struct {
	baseDir string
}

// NewJSONWriter creates a new JSON writer rooted at baseDir.
func NewJSONWriter(baseDir string) *JSONWriter {
	return &JSONWriter{baseDir: baseDir}
}

// WriteTable writes one table to <baseDir>/<table.Name>.json as an array of
// objects. No records produces an empty array.
func (w *JSONWriter) WriteTable(table Table) error {
	fullPath := filepath.Join(w.baseDir, table.Name+".json")

	slog.Info("Writing JSON file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(table.Records)))

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	objects := make([]map[string]string, 0, len(table.Records))
	for _, record := range table.Records {
		obj := make(map[string]string, len(table.Headers))
		for i, header := range table.Headers {
			if i < len(record) {
				obj[header] = record[i]
			}
		}
		objects = append(objects, obj)
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// WriteTables writes each table in order, stopping at the first failure.
func (w *JSONWriter) WriteTables(tables []Table) error {
	for _, table := range tables {
		if err := w.WriteTable(table); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
	}
	return nil
}

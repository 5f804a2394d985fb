// Package exporter writes analytics summary tables to disk.
//
// Every query result is first flattened into a Table (ordered headers plus
// string records), then written by one of three writers:
//
// CSVWriter: one CSV file per table, UTF-8 BOM for Excel compatibility.
//
// JSONWriter: one JSON file per table, records keyed by header.
//
// ExcelWriter: a single workbook with one sheet per table, via excelize.
package exporter

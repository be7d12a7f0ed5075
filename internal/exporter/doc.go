// Package exporter writes the detailed data table to downloadable files.
//
// CSVWriter is the low-level CSV writer with optional UTF-8 BOM for Excel
// compatibility. DetailExporter renders the detail table as CSV or XLSX,
// either to a stream (HTTP downloads) or to a file (CLI).
//
// Example usage:
//
//	exp := exporter.NewDetailExporter(logger)
//	err := exp.Export(w, exporter.FormatXLSX, rows)
package exporter

// Package report renders audit results for operators and exports them to files.
//
// ConsoleRenderer prints the aligned per-account table and summary counts.
// CSVExporter, JSONExporter, and YAMLExporter serialize a Document, and
// WriteExportFile places an export on disk without leaving partial files behind.
package report

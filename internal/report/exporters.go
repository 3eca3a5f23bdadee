package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	csvHeaderUsername                       = "Username"
	csvHeaderFullName                       = "FullName"
	csvHeaderEnabled                        = "Enabled"
	csvHeaderLastLogon                      = "LastLogon"
	csvHeaderDaysSinceLastLogon             = "DaysSinceLastLogon"
	csvHeaderActivityStatus                 = "ActivityStatus"
	csvHeaderPasswordLastSet                = "PasswordLastSet"
	csvHeaderPasswordAgeDays                = "PasswordAgeDays"
	csvHeaderPasswordAgeStatus              = "PasswordAgeStatus"
	csvHeaderPasswordExpires                = "PasswordExpires"
	csvHeaderPasswordNeverExpires           = "PasswordNeverExpires"
	csvHeaderDescription                    = "Description"
	jsonIndentConstant                      = "  "
	yamlIndentConstant                      = 2
	jsonExtensionConstant                   = ".json"
	yamlExtensionConstant                   = ".yaml"
	ymlExtensionConstant                    = ".yml"
	unsupportedExportFormatMessageConstant  = "unsupported export format"
	unsupportedExportFormatTemplateConstant = "%w: %s"
)

// ExportFormat enumerates supported export encodings.
type ExportFormat string

// Supported export formats.
const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatYAML ExportFormat = "yaml"
)

// ErrUnsupportedExportFormat indicates an export format outside csv, json, and yaml.
var ErrUnsupportedExportFormat = errors.New(unsupportedExportFormatMessageConstant)

// CSVHeader lists the export columns in their fixed order.
var CSVHeader = []string{
	csvHeaderUsername,
	csvHeaderFullName,
	csvHeaderEnabled,
	csvHeaderLastLogon,
	csvHeaderDaysSinceLastLogon,
	csvHeaderActivityStatus,
	csvHeaderPasswordLastSet,
	csvHeaderPasswordAgeDays,
	csvHeaderPasswordAgeStatus,
	csvHeaderPasswordExpires,
	csvHeaderPasswordNeverExpires,
	csvHeaderDescription,
}

// Exporter serializes a Document.
type Exporter interface {
	Export(writer io.Writer, document Document) error
}

// CSVExporter writes one row per account after a header row.
type CSVExporter struct{}

// Export writes the CSV encoding of the document accounts.
func (CSVExporter) Export(writer io.Writer, document Document) error {
	csvWriter := csv.NewWriter(writer)
	if writeError := csvWriter.Write(CSVHeader); writeError != nil {
		return writeError
	}
	for _, account := range document.Accounts {
		if writeError := csvWriter.Write(account.CSVRecord()); writeError != nil {
			return writeError
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// JSONExporter writes the indented JSON encoding of the document.
type JSONExporter struct{}

// Export writes the document as JSON.
func (JSONExporter) Export(writer io.Writer, document Document) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(document)
}

// YAMLExporter writes the YAML encoding of the document.
type YAMLExporter struct{}

// Export writes the document as YAML.
func (YAMLExporter) Export(writer io.Writer, document Document) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

// ResolveExportFormat validates the requested format, inferring it from the export path when empty.
func ResolveExportFormat(requestedFormat string, exportPath string) (ExportFormat, error) {
	normalizedFormat := ExportFormat(strings.ToLower(strings.TrimSpace(requestedFormat)))
	switch normalizedFormat {
	case ExportFormatCSV, ExportFormatJSON, ExportFormatYAML:
		return normalizedFormat, nil
	case "":
	default:
		return "", fmt.Errorf(unsupportedExportFormatTemplateConstant, ErrUnsupportedExportFormat, requestedFormat)
	}

	switch strings.ToLower(filepath.Ext(exportPath)) {
	case jsonExtensionConstant:
		return ExportFormatJSON, nil
	case yamlExtensionConstant, ymlExtensionConstant:
		return ExportFormatYAML, nil
	default:
		return ExportFormatCSV, nil
	}
}

// ExporterFor returns the exporter that implements the format.
func ExporterFor(format ExportFormat) (Exporter, error) {
	switch format {
	case ExportFormatCSV:
		return CSVExporter{}, nil
	case ExportFormatJSON:
		return JSONExporter{}, nil
	case ExportFormatYAML:
		return YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf(unsupportedExportFormatTemplateConstant, ErrUnsupportedExportFormat, format)
	}
}

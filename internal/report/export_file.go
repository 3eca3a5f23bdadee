package report

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	exportDirectoryPermissionsConstant   = 0o755
	exportFilePermissionsConstant        = 0o600
	exportTemporaryPatternConstant       = ".useraudit-export-*"
	exportDirectoryErrorTemplateConstant = "unable to create export directory %s: %w"
	exportCreateErrorTemplateConstant    = "unable to create export file in %s: %w"
	exportWriteErrorTemplateConstant     = "unable to write export %s: %w"
	exportFinalizeErrorTemplateConstant  = "unable to finalize export %s: %w"
)

// WriteExportFile encodes the document into a temporary file beside exportPath and
// renames it into place once fully written.
func WriteExportFile(exportPath string, format ExportFormat, document Document) error {
	exporter, exporterError := ExporterFor(format)
	if exporterError != nil {
		return exporterError
	}

	exportDirectory := filepath.Dir(exportPath)
	if mkdirError := os.MkdirAll(exportDirectory, exportDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(exportDirectoryErrorTemplateConstant, exportDirectory, mkdirError)
	}

	temporaryFile, createError := os.CreateTemp(exportDirectory, exportTemporaryPatternConstant)
	if createError != nil {
		return fmt.Errorf(exportCreateErrorTemplateConstant, exportDirectory, createError)
	}
	temporaryPath := temporaryFile.Name()

	if exportError := exporter.Export(temporaryFile, document); exportError != nil {
		temporaryFile.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf(exportWriteErrorTemplateConstant, exportPath, exportError)
	}

	if closeError := temporaryFile.Close(); closeError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(exportWriteErrorTemplateConstant, exportPath, closeError)
	}

	if chmodError := os.Chmod(temporaryPath, exportFilePermissionsConstant); chmodError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(exportFinalizeErrorTemplateConstant, exportPath, chmodError)
	}

	if renameError := os.Rename(temporaryPath, exportPath); renameError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(exportFinalizeErrorTemplateConstant, exportPath, renameError)
	}

	return nil
}

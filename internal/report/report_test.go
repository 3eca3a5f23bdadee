package report_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/report"
)

const (
	testRunIdentifierConstant         = "3f1c2a44-0d7e-4b51-9d62-6f2f0c1e8a90"
	testReportSubtestTemplateConstant = "%d_%s"
)

const testExpectedCSVConstant = "Username,FullName,Enabled,LastLogon,DaysSinceLastLogon,ActivityStatus,PasswordLastSet,PasswordAgeDays,PasswordAgeStatus,PasswordExpires,PasswordNeverExpires,Description\n" +
	"alice,Alice Example,True,2023-12-29 08:15:00,2,Active,2023-10-01 00:00:00,92,OldPassword,2024-03-01,False,\"Finance, floor 3\"\n" +
	"ghost,,False,Never,,NeverLoggedOn,Never,,NeverSet,Never,True,\n"

func buildTestRun(testInstance *testing.T) (accounts.EvaluationContext, []accounts.AuditResult, accounts.Summary) {
	testInstance.Helper()

	evaluationContext, contextError := accounts.NewEvaluationContext(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 90, 90)
	require.NoError(testInstance, contextError)

	lastLogon := time.Date(2023, time.December, 29, 8, 15, 0, 0, time.UTC)
	passwordLastSet := time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
	passwordExpires := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	records := []accounts.AccountRecord{
		{
			Username:        "alice",
			FullName:        "Alice Example",
			Description:     "Finance, floor 3",
			Enabled:         true,
			LastLogon:       &lastLogon,
			PasswordLastSet: &passwordLastSet,
			PasswordExpires: &passwordExpires,
		},
		{Username: "ghost"},
	}

	results := accounts.ClassifyAll(records, evaluationContext)
	return evaluationContext, results, accounts.Summarize(results)
}

func TestCSVExporterWritesFixedColumns(testInstance *testing.T) {
	evaluationContext, results, summary := buildTestRun(testInstance)
	document := report.NewDocument(testRunIdentifierConstant, evaluationContext, results, summary)

	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, report.CSVExporter{}.Export(outputBuffer, document))
	require.Equal(testInstance, testExpectedCSVConstant, outputBuffer.String())
}

func TestStructuredExportersIncludeRunMetadata(testInstance *testing.T) {
	evaluationContext, results, summary := buildTestRun(testInstance)
	document := report.NewDocument(testRunIdentifierConstant, evaluationContext, results, summary)

	jsonBuffer := &bytes.Buffer{}
	require.NoError(testInstance, report.JSONExporter{}.Export(jsonBuffer, document))
	var decodedJSON map[string]any
	require.NoError(testInstance, json.Unmarshal(jsonBuffer.Bytes(), &decodedJSON))
	require.Equal(testInstance, testRunIdentifierConstant, decodedJSON["run_id"])
	require.Equal(testInstance, "2024-01-01T00:00:00Z", decodedJSON["generated_at"])
	decodedAccounts := decodedJSON["accounts"].([]any)
	require.Len(testInstance, decodedAccounts, 2)
	require.Nil(testInstance, decodedAccounts[1].(map[string]any)["days_since_last_logon"])

	yamlBuffer := &bytes.Buffer{}
	require.NoError(testInstance, report.YAMLExporter{}.Export(yamlBuffer, document))
	var decodedYAML report.Document
	require.NoError(testInstance, yaml.Unmarshal(yamlBuffer.Bytes(), &decodedYAML))
	require.Equal(testInstance, document.Summary, decodedYAML.Summary)
	require.Equal(testInstance, 1, decodedYAML.Summary.OldPassword)
	require.Equal(testInstance, 90, decodedYAML.Thresholds.InactivityDays)
	require.Contains(testInstance, yamlBuffer.String(), "password_never_expires: true")
}

func TestResolveExportFormat(testInstance *testing.T) {
	testCases := []struct {
		name            string
		requestedFormat string
		exportPath      string
		expectedFormat  report.ExportFormat
		expectError     bool
	}{
		{name: "explicit_csv", requestedFormat: "csv", exportPath: "audit.json", expectedFormat: report.ExportFormatCSV},
		{name: "explicit_uppercase_yaml", requestedFormat: " YAML ", exportPath: "audit.csv", expectedFormat: report.ExportFormatYAML},
		{name: "inferred_json", exportPath: "reports/audit.JSON", expectedFormat: report.ExportFormatJSON},
		{name: "inferred_yml", exportPath: "audit.yml", expectedFormat: report.ExportFormatYAML},
		{name: "inferred_default_csv", exportPath: "audit.txt", expectedFormat: report.ExportFormatCSV},
		{name: "unsupported", requestedFormat: "xml", exportPath: "audit.xml", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testReportSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			format, resolveError := report.ResolveExportFormat(testCase.requestedFormat, testCase.exportPath)
			if testCase.expectError {
				require.ErrorIs(testInstance, resolveError, report.ErrUnsupportedExportFormat)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedFormat, format)
		})
	}
}

func TestWriteExportFile(testInstance *testing.T) {
	evaluationContext, results, summary := buildTestRun(testInstance)
	document := report.NewDocument(testRunIdentifierConstant, evaluationContext, results, summary)

	exportDirectory := testInstance.TempDir()
	exportPath := filepath.Join(exportDirectory, "nested", "audit.csv")

	require.NoError(testInstance, report.WriteExportFile(exportPath, report.ExportFormatCSV, document))

	exportedContent, readError := os.ReadFile(exportPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testExpectedCSVConstant, string(exportedContent))

	directoryEntries, listError := os.ReadDir(filepath.Dir(exportPath))
	require.NoError(testInstance, listError)
	require.Len(testInstance, directoryEntries, 1)
}

func TestWriteExportFileFailsWhenParentIsFile(testInstance *testing.T) {
	evaluationContext, results, summary := buildTestRun(testInstance)
	document := report.NewDocument(testRunIdentifierConstant, evaluationContext, results, summary)

	blockingFilePath := filepath.Join(testInstance.TempDir(), "blocking")
	require.NoError(testInstance, os.WriteFile(blockingFilePath, []byte("occupied"), 0o600))

	writeError := report.WriteExportFile(filepath.Join(blockingFilePath, "audit.csv"), report.ExportFormatCSV, document)
	require.Error(testInstance, writeError)
	require.Contains(testInstance, writeError.Error(), "unable to create export directory")
}

func TestConsoleRendererPrintsTableAndSummary(testInstance *testing.T) {
	evaluationContext, results, summary := buildTestRun(testInstance)

	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, report.NewConsoleRenderer(outputBuffer).Render(evaluationContext, results, summary))

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "inactive after 90 days, passwords older than 90 days")
	require.Contains(testInstance, renderedOutput, "USERNAME")
	require.Contains(testInstance, renderedOutput, "alice")
	require.Contains(testInstance, renderedOutput, "OldPassword")
	require.Contains(testInstance, renderedOutput, "NeverLoggedOn")
	require.Regexp(testInstance, `Total accounts:\s+2\n`, renderedOutput)
	require.Regexp(testInstance, `Disabled:\s+1\n`, renderedOutput)
	require.Regexp(testInstance, `Never logged on:\s+1\n`, renderedOutput)
}

func TestConsoleRendererHandlesEmptyRun(testInstance *testing.T) {
	evaluationContext, _, _ := buildTestRun(testInstance)

	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, report.NewConsoleRenderer(outputBuffer).Render(evaluationContext, nil, accounts.Summarize(nil)))

	require.Contains(testInstance, outputBuffer.String(), "No local accounts found.")
	require.Regexp(testInstance, `Total accounts:\s+0\n`, outputBuffer.String())
}

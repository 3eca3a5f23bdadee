package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
)

const (
	consoleTitleTemplateConstant       = "Local account audit (inactive after %d days, passwords older than %d days)\n\n"
	consoleNoAccountsMessageConstant   = "No local accounts found.\n"
	consoleSummaryTitleConstant        = "\nSummary\n"
	consoleSummaryLineTemplateConstant = "  %s\t%d\n"
	consoleColumnSeparatorConstant     = "\t"
	consoleAbsentDaysConstant          = "-"
	consoleEnabledYesConstant          = "Yes"
	consoleEnabledNoConstant           = "No"
	tabwriterMinimumWidthConstant      = 0
	tabwriterTabWidthConstant          = 8
	tabwriterPaddingConstant           = 2
	tabwriterPaddingCharacterConstant  = ' '
)

var consoleTableHeader = []string{
	"USERNAME",
	"FULL NAME",
	"ENABLED",
	"LAST LOGON",
	"DAYS",
	"ACTIVITY",
	"PASSWORD LAST SET",
	"AGE",
	"PASSWORD",
	"EXPIRES",
}

// ConsoleRenderer prints audit results as an aligned table followed by summary counts.
type ConsoleRenderer struct {
	writer io.Writer
}

// NewConsoleRenderer constructs a renderer writing to the provided writer.
func NewConsoleRenderer(writer io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{writer: writer}
}

// Render writes the report for one run.
func (renderer *ConsoleRenderer) Render(evaluationContext accounts.EvaluationContext, results []accounts.AuditResult, summary accounts.Summary) error {
	if _, writeError := fmt.Fprintf(renderer.writer, consoleTitleTemplateConstant, evaluationContext.InactivityThresholdDays, evaluationContext.PasswordAgeThresholdDays); writeError != nil {
		return writeError
	}

	if len(results) == 0 {
		if _, writeError := io.WriteString(renderer.writer, consoleNoAccountsMessageConstant); writeError != nil {
			return writeError
		}
	} else if tableError := renderer.renderTable(results); tableError != nil {
		return tableError
	}

	return renderer.renderSummary(summary)
}

func (renderer *ConsoleRenderer) renderTable(results []accounts.AuditResult) error {
	tableWriter := tabwriter.NewWriter(renderer.writer, tabwriterMinimumWidthConstant, tabwriterTabWidthConstant, tabwriterPaddingConstant, tabwriterPaddingCharacterConstant, 0)

	if _, writeError := fmt.Fprintln(tableWriter, strings.Join(consoleTableHeader, consoleColumnSeparatorConstant)); writeError != nil {
		return writeError
	}

	for _, result := range results {
		row := []string{
			result.Username,
			result.FullName,
			formatEnabled(result.Enabled),
			result.LastLogonDisplay,
			formatConsoleDays(result.DaysSinceLastLogon),
			string(result.ActivityStatus),
			result.PasswordLastSetDisplay,
			formatConsoleDays(result.PasswordAgeDays),
			string(result.PasswordAgeStatus),
			result.PasswordExpiresDisplay,
		}
		if _, writeError := fmt.Fprintln(tableWriter, strings.Join(row, consoleColumnSeparatorConstant)); writeError != nil {
			return writeError
		}
	}

	return tableWriter.Flush()
}

func (renderer *ConsoleRenderer) renderSummary(summary accounts.Summary) error {
	if _, writeError := io.WriteString(renderer.writer, consoleSummaryTitleConstant); writeError != nil {
		return writeError
	}

	tableWriter := tabwriter.NewWriter(renderer.writer, tabwriterMinimumWidthConstant, tabwriterTabWidthConstant, tabwriterPaddingConstant, tabwriterPaddingCharacterConstant, 0)
	summaryLines := []struct {
		label string
		count int
	}{
		{label: "Total accounts:", count: summary.Total},
		{label: "Enabled:", count: summary.EnabledCount},
		{label: "Disabled:", count: summary.DisabledCount},
		{label: "Inactive:", count: summary.InactiveCount},
		{label: "Old passwords:", count: summary.OldPasswordCount},
		{label: "Never logged on:", count: summary.NeverLoggedOnCount},
	}
	for _, summaryLine := range summaryLines {
		if _, writeError := fmt.Fprintf(tableWriter, consoleSummaryLineTemplateConstant, summaryLine.label, summaryLine.count); writeError != nil {
			return writeError
		}
	}

	return tableWriter.Flush()
}

func formatEnabled(enabled bool) string {
	if enabled {
		return consoleEnabledYesConstant
	}
	return consoleEnabledNoConstant
}

func formatConsoleDays(days *int) string {
	if days == nil {
		return consoleAbsentDaysConstant
	}
	return strconv.Itoa(*days)
}

package report

import (
	"strconv"
	"time"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
)

const (
	generatedAtLayoutConstant = time.RFC3339
	booleanTrueConstant       = "True"
	booleanFalseConstant      = "False"
)

// Document is the serializable form of one audit run.
type Document struct {
	RunID       string            `json:"run_id" yaml:"run_id"`
	GeneratedAt string            `json:"generated_at" yaml:"generated_at"`
	Thresholds  ThresholdDocument `json:"thresholds" yaml:"thresholds"`
	Summary     SummaryDocument   `json:"summary" yaml:"summary"`
	Accounts    []AccountDocument `json:"accounts" yaml:"accounts"`
}

// ThresholdDocument records the thresholds the run was evaluated against.
type ThresholdDocument struct {
	InactivityDays  int `json:"inactivity_days" yaml:"inactivity_days"`
	PasswordAgeDays int `json:"password_age_days" yaml:"password_age_days"`
}

// SummaryDocument mirrors accounts.Summary.
type SummaryDocument struct {
	Total         int `json:"total" yaml:"total"`
	Enabled       int `json:"enabled" yaml:"enabled"`
	Disabled      int `json:"disabled" yaml:"disabled"`
	Inactive      int `json:"inactive" yaml:"inactive"`
	OldPassword   int `json:"old_password" yaml:"old_password"`
	NeverLoggedOn int `json:"never_logged_on" yaml:"never_logged_on"`
}

// AccountDocument carries the display form of one audit result.
type AccountDocument struct {
	Username             string `json:"username" yaml:"username"`
	FullName             string `json:"full_name" yaml:"full_name"`
	Enabled              bool   `json:"enabled" yaml:"enabled"`
	LastLogon            string `json:"last_logon" yaml:"last_logon"`
	DaysSinceLastLogon   *int   `json:"days_since_last_logon" yaml:"days_since_last_logon"`
	ActivityStatus       string `json:"activity_status" yaml:"activity_status"`
	PasswordLastSet      string `json:"password_last_set" yaml:"password_last_set"`
	PasswordAgeDays      *int   `json:"password_age_days" yaml:"password_age_days"`
	PasswordAgeStatus    string `json:"password_age_status" yaml:"password_age_status"`
	PasswordExpires      string `json:"password_expires" yaml:"password_expires"`
	PasswordNeverExpires bool   `json:"password_never_expires" yaml:"password_never_expires"`
	Description          string `json:"description" yaml:"description"`
}

// NewDocument assembles the export document for a run.
func NewDocument(runID string, evaluationContext accounts.EvaluationContext, results []accounts.AuditResult, summary accounts.Summary) Document {
	accountDocuments := make([]AccountDocument, 0, len(results))
	for _, result := range results {
		accountDocuments = append(accountDocuments, AccountDocument{
			Username:             result.Username,
			FullName:             result.FullName,
			Enabled:              result.Enabled,
			LastLogon:            result.LastLogonDisplay,
			DaysSinceLastLogon:   result.DaysSinceLastLogon,
			ActivityStatus:       string(result.ActivityStatus),
			PasswordLastSet:      result.PasswordLastSetDisplay,
			PasswordAgeDays:      result.PasswordAgeDays,
			PasswordAgeStatus:    string(result.PasswordAgeStatus),
			PasswordExpires:      result.PasswordExpiresDisplay,
			PasswordNeverExpires: result.PasswordNeverExpires,
			Description:          result.Description,
		})
	}

	return Document{
		RunID:       runID,
		GeneratedAt: evaluationContext.Now.Format(generatedAtLayoutConstant),
		Thresholds: ThresholdDocument{
			InactivityDays:  evaluationContext.InactivityThresholdDays,
			PasswordAgeDays: evaluationContext.PasswordAgeThresholdDays,
		},
		Summary: SummaryDocument{
			Total:         summary.Total,
			Enabled:       summary.EnabledCount,
			Disabled:      summary.DisabledCount,
			Inactive:      summary.InactiveCount,
			OldPassword:   summary.OldPasswordCount,
			NeverLoggedOn: summary.NeverLoggedOnCount,
		},
		Accounts: accountDocuments,
	}
}

// CSVRecord returns the account formatted for CSV encoding in the fixed column order.
func (account AccountDocument) CSVRecord() []string {
	return []string{
		account.Username,
		account.FullName,
		formatBoolean(account.Enabled),
		account.LastLogon,
		formatOptionalDays(account.DaysSinceLastLogon),
		account.ActivityStatus,
		account.PasswordLastSet,
		formatOptionalDays(account.PasswordAgeDays),
		account.PasswordAgeStatus,
		account.PasswordExpires,
		formatBoolean(account.PasswordNeverExpires),
		account.Description,
	}
}

func formatBoolean(value bool) string {
	if value {
		return booleanTrueConstant
	}
	return booleanFalseConstant
}

func formatOptionalDays(days *int) string {
	if days == nil {
		return ""
	}
	return strconv.Itoa(*days)
}

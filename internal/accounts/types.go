package accounts

import (
	"errors"
	"time"
)

const (
	// DefaultThresholdDays is the inactivity and password age threshold applied when none is configured.
	DefaultThresholdDays = 90

	// NeverDisplayValue is rendered for absent timestamps.
	NeverDisplayValue = "Never"

	// TimestampDisplayLayout formats present logon and password timestamps.
	TimestampDisplayLayout = "2006-01-02 15:04:05"

	// DateDisplayLayout formats the password expiry date.
	DateDisplayLayout = "2006-01-02"

	invalidThresholdMessageConstant = "threshold days must be positive"
)

// ErrInvalidThreshold indicates a non-positive threshold was supplied to NewEvaluationContext.
var ErrInvalidThreshold = errors.New(invalidThresholdMessageConstant)

// ActivityStatus enumerates logon activity verdicts.
type ActivityStatus string

// Activity verdicts.
const (
	ActivityStatusActive        ActivityStatus = "Active"
	ActivityStatusInactive      ActivityStatus = "Inactive"
	ActivityStatusNeverLoggedOn ActivityStatus = "NeverLoggedOn"
)

// PasswordAgeStatus enumerates password age verdicts.
type PasswordAgeStatus string

// Password age verdicts.
const (
	PasswordAgeStatusOk          PasswordAgeStatus = "Ok"
	PasswordAgeStatusOldPassword PasswordAgeStatus = "OldPassword"
	PasswordAgeStatusNeverSet    PasswordAgeStatus = "NeverSet"
)

// AccountRecord describes one local account as reported by the host.
type AccountRecord struct {
	Username        string
	FullName        string
	Description     string
	Enabled         bool
	LastLogon       *time.Time
	PasswordLastSet *time.Time
	PasswordExpires *time.Time
}

// EvaluationContext carries the run-wide evaluation time and thresholds.
type EvaluationContext struct {
	Now                      time.Time
	InactivityThresholdDays  int
	PasswordAgeThresholdDays int
}

// NewEvaluationContext validates the thresholds and captures the evaluation time.
func NewEvaluationContext(now time.Time, inactivityThresholdDays int, passwordAgeThresholdDays int) (EvaluationContext, error) {
	if inactivityThresholdDays <= 0 || passwordAgeThresholdDays <= 0 {
		return EvaluationContext{}, ErrInvalidThreshold
	}
	return EvaluationContext{
		Now:                      now,
		InactivityThresholdDays:  inactivityThresholdDays,
		PasswordAgeThresholdDays: passwordAgeThresholdDays,
	}, nil
}

// AuditResult is the per-account verdict derived from an AccountRecord.
type AuditResult struct {
	Username               string
	FullName               string
	Description            string
	Enabled                bool
	LastLogon              *time.Time
	LastLogonDisplay       string
	DaysSinceLastLogon     *int
	ActivityStatus         ActivityStatus
	PasswordLastSet        *time.Time
	PasswordLastSetDisplay string
	PasswordAgeDays        *int
	PasswordAgeStatus      PasswordAgeStatus
	PasswordExpires        *time.Time
	PasswordExpiresDisplay string
	PasswordNeverExpires   bool
}

// Summary aggregates audit results for one run.
type Summary struct {
	Total              int
	EnabledCount       int
	DisabledCount      int
	InactiveCount      int
	OldPasswordCount   int
	NeverLoggedOnCount int
}

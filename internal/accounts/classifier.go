package accounts

import "time"

const hoursPerDayConstant = 24 * time.Hour

// DaysBetween returns the whole days elapsed from then to now, truncated toward zero.
// A then later than now yields a negative count.
func DaysBetween(now time.Time, then time.Time) int {
	return int(now.Sub(then) / hoursPerDayConstant)
}

// Classify derives the audit verdict for a single account.
func Classify(record AccountRecord, evaluationContext EvaluationContext) AuditResult {
	result := AuditResult{
		Username:               record.Username,
		FullName:               record.FullName,
		Description:            record.Description,
		Enabled:                record.Enabled,
		LastLogon:              copyTimestamp(record.LastLogon),
		LastLogonDisplay:       formatTimestamp(record.LastLogon, TimestampDisplayLayout),
		PasswordLastSet:        copyTimestamp(record.PasswordLastSet),
		PasswordLastSetDisplay: formatTimestamp(record.PasswordLastSet, TimestampDisplayLayout),
		PasswordExpires:        copyTimestamp(record.PasswordExpires),
		PasswordExpiresDisplay: formatTimestamp(record.PasswordExpires, DateDisplayLayout),
		PasswordNeverExpires:   record.PasswordExpires == nil,
	}

	result.DaysSinceLastLogon, result.ActivityStatus = classifyActivity(record.LastLogon, evaluationContext)
	result.PasswordAgeDays, result.PasswordAgeStatus = classifyPasswordAge(record.PasswordLastSet, evaluationContext)

	return result
}

// ClassifyAll classifies every record against the same context, preserving input order.
func ClassifyAll(records []AccountRecord, evaluationContext EvaluationContext) []AuditResult {
	results := make([]AuditResult, 0, len(records))
	for _, record := range records {
		results = append(results, Classify(record, evaluationContext))
	}
	return results
}

func classifyActivity(lastLogon *time.Time, evaluationContext EvaluationContext) (*int, ActivityStatus) {
	if lastLogon == nil {
		return nil, ActivityStatusNeverLoggedOn
	}

	daysSinceLastLogon := DaysBetween(evaluationContext.Now, *lastLogon)
	if daysSinceLastLogon > evaluationContext.InactivityThresholdDays {
		return &daysSinceLastLogon, ActivityStatusInactive
	}
	return &daysSinceLastLogon, ActivityStatusActive
}

func classifyPasswordAge(passwordLastSet *time.Time, evaluationContext EvaluationContext) (*int, PasswordAgeStatus) {
	if passwordLastSet == nil {
		return nil, PasswordAgeStatusNeverSet
	}

	passwordAgeDays := DaysBetween(evaluationContext.Now, *passwordLastSet)
	if passwordAgeDays > evaluationContext.PasswordAgeThresholdDays {
		return &passwordAgeDays, PasswordAgeStatusOldPassword
	}
	return &passwordAgeDays, PasswordAgeStatusOk
}

func formatTimestamp(timestamp *time.Time, layout string) string {
	if timestamp == nil {
		return NeverDisplayValue
	}
	return timestamp.Format(layout)
}

func copyTimestamp(timestamp *time.Time) *time.Time {
	if timestamp == nil {
		return nil
	}
	duplicated := *timestamp
	return &duplicated
}

package accounts

// Summarize counts enabled, inactive, old-password, and never-logged-on accounts.
func Summarize(results []AuditResult) Summary {
	summary := Summary{Total: len(results)}

	for _, result := range results {
		if result.Enabled {
			summary.EnabledCount++
		}
		switch result.ActivityStatus {
		case ActivityStatusInactive:
			summary.InactiveCount++
		case ActivityStatusNeverLoggedOn:
			summary.NeverLoggedOnCount++
		}
		if result.PasswordAgeStatus == PasswordAgeStatusOldPassword {
			summary.OldPasswordCount++
		}
	}

	summary.DisabledCount = summary.Total - summary.EnabledCount

	return summary
}

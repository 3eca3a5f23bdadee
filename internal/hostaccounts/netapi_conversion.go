package hostaccounts

import (
	"time"

	winshared "github.com/iamacarpet/go-win64api/shared"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
)

// convertLocalUsers maps NetUserEnum results onto account records. NetUserEnum
// reports a zero or epoch last logon for accounts that never signed in, and the
// password age relative to the query time rather than a timestamp.
func convertLocalUsers(localUsers []winshared.LocalUser, evaluationTime time.Time, maximumPasswordAgeDays int) []accounts.AccountRecord {
	records := make([]accounts.AccountRecord, 0, len(localUsers))
	for _, localUser := range localUsers {
		record := accounts.AccountRecord{
			Username: localUser.Username,
			FullName: localUser.FullName,
			Enabled:  localUser.IsEnabled,
		}

		if !localUser.LastLogon.IsZero() && localUser.LastLogon.Unix() > 0 {
			lastLogon := localUser.LastLogon
			record.LastLogon = &lastLogon
		}

		if localUser.PasswordAge > 0 {
			passwordLastSet := evaluationTime.Add(-localUser.PasswordAge)
			record.PasswordLastSet = &passwordLastSet

			if !localUser.PasswordNeverExpires {
				passwordExpires := passwordLastSet.AddDate(0, 0, maximumPasswordAgeDays)
				record.PasswordExpires = &passwordExpires
			}
		}

		records = append(records, record)
	}
	return records
}

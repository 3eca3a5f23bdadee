package hostaccounts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	shadowFieldSeparatorConstant          = ":"
	shadowMinimumFieldCountConstant       = 8
	shadowLockedPasswordPrefixConstant    = "!"
	shadowNeverExpiresMaximumDaysConstant = 99999
	shadowMalformedLineTemplateConstant   = "malformed shadow entry on line %d"
	shadowInvalidDayFieldTemplateConstant = "invalid %s value %q for %s: %w"
	shadowLastChangeFieldNameConstant     = "lastchg"
	shadowMaximumFieldNameConstant        = "max"
	shadowExpireFieldNameConstant         = "expire"
	secondsPerDayConstant                 = 24 * 60 * 60
)

type shadowEntry struct {
	Username          string
	PasswordLocked    bool
	LastChangeDay     *int
	MaximumAgeDays    *int
	AccountExpiresDay *int
}

func parseShadowEntries(reader io.Reader) (map[string]shadowEntry, error) {
	entries := make(map[string]shadowEntry)

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, shadowFieldSeparatorConstant)
		if len(fields) < shadowMinimumFieldCountConstant {
			return nil, fmt.Errorf(shadowMalformedLineTemplateConstant, lineNumber)
		}

		username := fields[0]
		lastChangeDay, lastChangeError := parseOptionalDay(fields[2], shadowLastChangeFieldNameConstant, username)
		if lastChangeError != nil {
			return nil, lastChangeError
		}
		maximumAgeDays, maximumError := parseOptionalDay(fields[4], shadowMaximumFieldNameConstant, username)
		if maximumError != nil {
			return nil, maximumError
		}
		accountExpiresDay, expireError := parseOptionalDay(fields[7], shadowExpireFieldNameConstant, username)
		if expireError != nil {
			return nil, expireError
		}

		entries[username] = shadowEntry{
			Username:          username,
			PasswordLocked:    strings.HasPrefix(fields[1], shadowLockedPasswordPrefixConstant),
			LastChangeDay:     lastChangeDay,
			MaximumAgeDays:    maximumAgeDays,
			AccountExpiresDay: accountExpiresDay,
		}
	}

	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}

	return entries, nil
}

func parseOptionalDay(rawValue string, fieldName string, username string) (*int, error) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return nil, nil
	}
	day, parseError := strconv.Atoi(trimmedValue)
	if parseError != nil {
		return nil, fmt.Errorf(shadowInvalidDayFieldTemplateConstant, fieldName, trimmedValue, username, parseError)
	}
	return &day, nil
}

// passwordLastSet treats a zero last-change day as a forced reset rather than a real change.
func (entry shadowEntry) passwordLastSet() *time.Time {
	if entry.LastChangeDay == nil || *entry.LastChangeDay == 0 {
		return nil
	}
	lastSet := epochDay(*entry.LastChangeDay)
	return &lastSet
}

func (entry shadowEntry) passwordExpires() *time.Time {
	lastSet := entry.passwordLastSet()
	if lastSet == nil || entry.MaximumAgeDays == nil || *entry.MaximumAgeDays >= shadowNeverExpiresMaximumDaysConstant {
		return nil
	}
	expires := lastSet.AddDate(0, 0, *entry.MaximumAgeDays)
	return &expires
}

func (entry shadowEntry) enabled(now time.Time) bool {
	if entry.PasswordLocked {
		return false
	}
	if entry.AccountExpiresDay == nil {
		return true
	}
	return now.Before(epochDay(*entry.AccountExpiresDay))
}

func epochDay(day int) time.Time {
	return time.Unix(int64(day)*secondsPerDayConstant, 0).UTC()
}

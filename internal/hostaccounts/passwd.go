package hostaccounts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	passwdFieldSeparatorConstant        = ":"
	passwdCommentPrefixConstant         = "#"
	passwdFieldCountConstant            = 7
	gecosFieldSeparatorConstant         = ","
	descriptionJoinSeparatorConstant    = ", "
	passwdMalformedLineTemplateConstant = "malformed passwd entry on line %d"
	passwdInvalidUIDTemplateConstant    = "invalid uid %q for %s: %w"
	nologinShellSuffixConstant          = "nologin"
	falseShellSuffixConstant            = "/false"
	rootUIDConstant                     = 0
)

type passwdEntry struct {
	Username    string
	UID         int
	FullName    string
	Description string
	Shell       string
}

func parsePasswdEntries(reader io.Reader) ([]passwdEntry, error) {
	var entries []passwdEntry

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, passwdCommentPrefixConstant) {
			continue
		}

		fields := strings.Split(line, passwdFieldSeparatorConstant)
		if len(fields) != passwdFieldCountConstant {
			return nil, fmt.Errorf(passwdMalformedLineTemplateConstant, lineNumber)
		}

		uid, uidError := strconv.Atoi(fields[2])
		if uidError != nil {
			return nil, fmt.Errorf(passwdInvalidUIDTemplateConstant, fields[2], fields[0], uidError)
		}

		fullName, description := splitGECOS(fields[4])
		entries = append(entries, passwdEntry{
			Username:    fields[0],
			UID:         uid,
			FullName:    fullName,
			Description: description,
			Shell:       fields[6],
		})
	}

	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}

	return entries, nil
}

// splitGECOS returns the full name and the remaining non-empty GECOS fields.
func splitGECOS(gecos string) (string, string) {
	gecosFields := strings.Split(gecos, gecosFieldSeparatorConstant)
	fullName := strings.TrimSpace(gecosFields[0])

	var details []string
	for _, gecosField := range gecosFields[1:] {
		trimmed := strings.TrimSpace(gecosField)
		if len(trimmed) == 0 {
			continue
		}
		details = append(details, trimmed)
	}

	return fullName, strings.Join(details, descriptionJoinSeparatorConstant)
}

func (entry passwdEntry) isHumanAccount(minimumUID int) bool {
	if entry.UID == rootUIDConstant {
		return true
	}
	if entry.UID < minimumUID {
		return false
	}
	return !isNonLoginShell(entry.Shell)
}

func isNonLoginShell(shell string) bool {
	trimmedShell := strings.TrimSpace(shell)
	return strings.HasSuffix(trimmedShell, nologinShellSuffixConstant) || strings.HasSuffix(trimmedShell, falseShellSuffixConstant)
}

package hostaccounts

import (
	"bufio"
	"strings"
	"time"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/execshell"
)

const (
	// DefaultLastlogCommand is the executable queried for logon history.
	DefaultLastlogCommand = string(execshell.CommandLastlog)

	lastlogHeaderPrefixConstant        = "Username"
	lastlogNeverLoggedInConstant       = "**Never logged in**"
	lastlogTimestampLayoutConstant     = "Mon Jan 2 15:04:05 -0700 2006"
	lastlogTimestampFieldCountConstant = 6
	lastlogFieldJoinSeparatorConstant  = " "
	lastlogLocaleVariableConstant      = "LC_ALL"
	lastlogLocaleValueConstant         = "C"
)

// lastlogCommand pins the C locale so timestamps use the layout parseLastlogOutput expects.
func lastlogCommand(executable string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandName(executable),
		Details: execshell.CommandDetails{
			Environment: map[string]string{lastlogLocaleVariableConstant: lastlogLocaleValueConstant},
		},
	}
}

// unparsedLastlogRow is a row that named an account but carried no readable timestamp.
type unparsedLastlogRow struct {
	Username string
	Line     string
}

// parseLastlogOutput maps usernames to their most recent logon. Accounts that never
// logged in are omitted; rows whose timestamp cannot be parsed are omitted and returned separately.
func parseLastlogOutput(output string) (map[string]time.Time, []unparsedLastlogRow) {
	lastLogons := make(map[string]time.Time)
	var unparsedRows []unparsedLastlogRow

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == lastlogHeaderPrefixConstant {
			continue
		}
		if strings.Contains(line, lastlogNeverLoggedInConstant) {
			continue
		}
		if len(fields) < lastlogTimestampFieldCountConstant+1 {
			unparsedRows = append(unparsedRows, unparsedLastlogRow{Username: fields[0], Line: line})
			continue
		}

		timestampText := strings.Join(fields[len(fields)-lastlogTimestampFieldCountConstant:], lastlogFieldJoinSeparatorConstant)
		lastLogon, parseError := time.Parse(lastlogTimestampLayoutConstant, timestampText)
		if parseError != nil {
			unparsedRows = append(unparsedRows, unparsedLastlogRow{Username: fields[0], Line: line})
			continue
		}
		lastLogons[fields[0]] = lastLogon
	}

	return lastLogons, unparsedRows
}

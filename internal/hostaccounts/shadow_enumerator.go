package hostaccounts

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/execshell"
)

const (
	passwdReadErrorTemplateConstant   = "unable to read account database %s: %w"
	shadowReadErrorTemplateConstant   = "unable to read shadow database %s: %w"
	lastlogUnavailableMessageConstant = "last logon history unavailable; reporting every account as never logged on"
	accountsEnumeratedMessageConstant = "local accounts enumerated"
	logFieldAccountCountConstant      = "account_count"
	logFieldPasswdPathConstant        = "passwd_path"
	logFieldLastlogCommandConstant    = "lastlog_command"
	lastlogRowUnparsedMessageConstant = "last logon row unreadable; account reported as never logged on"
	logFieldUsernameConstant          = "username"
	logFieldLastlogLineConstant       = "lastlog_line"
)

// CommandExecutor runs host utilities on behalf of the enumerator.
type CommandExecutor interface {
	ExecuteCommand(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// ShadowEnumerator lists human accounts from the passwd and shadow databases.
type ShadowEnumerator struct {
	options  Options
	executor CommandExecutor
	logger   *zap.Logger
}

// NewShadowEnumerator constructs an enumerator; a nil logger discards diagnostics.
func NewShadowEnumerator(options Options, executor CommandExecutor, logger *zap.Logger) *ShadowEnumerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShadowEnumerator{
		options:  options.withDefaults(),
		executor: executor,
		logger:   logger,
	}
}

// EnumerateAccounts returns records in passwd order.
func (enumerator *ShadowEnumerator) EnumerateAccounts(executionContext context.Context, evaluationTime time.Time) ([]accounts.AccountRecord, error) {
	passwdEntries, passwdError := enumerator.readPasswd()
	if passwdError != nil {
		return nil, passwdError
	}

	shadowEntries, shadowError := enumerator.readShadow()
	if shadowError != nil {
		return nil, shadowError
	}

	lastLogons := enumerator.readLastLogons(executionContext)

	records := make([]accounts.AccountRecord, 0, len(passwdEntries))
	for _, passwdEntry := range passwdEntries {
		if !passwdEntry.isHumanAccount(enumerator.options.MinimumUID) {
			continue
		}

		record := accounts.AccountRecord{
			Username:    passwdEntry.Username,
			FullName:    passwdEntry.FullName,
			Description: passwdEntry.Description,
			Enabled:     true,
		}

		if shadowEntry, found := shadowEntries[passwdEntry.Username]; found {
			record.Enabled = shadowEntry.enabled(evaluationTime)
			record.PasswordLastSet = shadowEntry.passwordLastSet()
			record.PasswordExpires = shadowEntry.passwordExpires()
		}

		if lastLogon, found := lastLogons[passwdEntry.Username]; found {
			record.LastLogon = &lastLogon
		}

		records = append(records, record)
	}

	enumerator.logger.Debug(
		accountsEnumeratedMessageConstant,
		zap.String(logFieldPasswdPathConstant, enumerator.options.PasswdPath),
		zap.Int(logFieldAccountCountConstant, len(records)),
	)

	return records, nil
}

func (enumerator *ShadowEnumerator) readPasswd() ([]passwdEntry, error) {
	passwdFile, openError := os.Open(enumerator.options.PasswdPath)
	if openError != nil {
		return nil, fmt.Errorf(passwdReadErrorTemplateConstant, enumerator.options.PasswdPath, openError)
	}
	defer passwdFile.Close()

	entries, parseError := parsePasswdEntries(passwdFile)
	if parseError != nil {
		return nil, fmt.Errorf(passwdReadErrorTemplateConstant, enumerator.options.PasswdPath, parseError)
	}
	return entries, nil
}

func (enumerator *ShadowEnumerator) readShadow() (map[string]shadowEntry, error) {
	shadowFile, openError := os.Open(enumerator.options.ShadowPath)
	if openError != nil {
		return nil, fmt.Errorf(shadowReadErrorTemplateConstant, enumerator.options.ShadowPath, openError)
	}
	defer shadowFile.Close()

	entries, parseError := parseShadowEntries(shadowFile)
	if parseError != nil {
		return nil, fmt.Errorf(shadowReadErrorTemplateConstant, enumerator.options.ShadowPath, parseError)
	}
	return entries, nil
}

func (enumerator *ShadowEnumerator) readLastLogons(executionContext context.Context) map[string]time.Time {
	if enumerator.executor == nil {
		return map[string]time.Time{}
	}

	executionResult, executionError := enumerator.executor.ExecuteCommand(executionContext, lastlogCommand(enumerator.options.LastlogCommand))
	if executionError != nil {
		enumerator.logger.Warn(
			lastlogUnavailableMessageConstant,
			zap.String(logFieldLastlogCommandConstant, enumerator.options.LastlogCommand),
			zap.Error(executionError),
		)
		return map[string]time.Time{}
	}

	lastLogons, unparsedRows := parseLastlogOutput(executionResult.StandardOutput)
	for _, unparsedRow := range unparsedRows {
		enumerator.logger.Warn(
			lastlogRowUnparsedMessageConstant,
			zap.String(logFieldUsernameConstant, unparsedRow.Username),
			zap.String(logFieldLastlogLineConstant, unparsedRow.Line),
		)
	}
	return lastLogons
}

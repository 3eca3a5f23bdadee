//go:build windows && amd64

package hostaccounts

import (
	"context"
	"fmt"
	"time"

	wapi "github.com/iamacarpet/go-win64api"
	"go.uber.org/zap"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
)

const (
	netUserEnumErrorTemplateConstant = "unable to list local users: %w"
)

// NetAPIEnumerator lists local accounts through NetUserEnum.
type NetAPIEnumerator struct {
	options Options
	logger  *zap.Logger
}

// NewNetAPIEnumerator constructs a Windows enumerator; a nil logger discards diagnostics.
func NewNetAPIEnumerator(options Options, logger *zap.Logger) *NetAPIEnumerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NetAPIEnumerator{options: options.withDefaults(), logger: logger}
}

// EnumerateAccounts returns the normal local accounts reported by the host.
func (enumerator *NetAPIEnumerator) EnumerateAccounts(executionContext context.Context, evaluationTime time.Time) ([]accounts.AccountRecord, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	localUsers, listError := wapi.ListLocalUsers()
	if listError != nil {
		return nil, fmt.Errorf(netUserEnumErrorTemplateConstant, listError)
	}

	records := convertLocalUsers(localUsers, evaluationTime, enumerator.options.MaximumPasswordAgeDays)
	enumerator.logger.Debug(accountsEnumeratedMessageConstant, zap.Int(logFieldAccountCountConstant, len(records)))
	return records, nil
}

// NewDefaultEnumerator returns the NetUserEnum backed enumerator.
func NewDefaultEnumerator(options Options, _ CommandExecutor, logger *zap.Logger) Enumerator {
	return NewNetAPIEnumerator(options, logger)
}

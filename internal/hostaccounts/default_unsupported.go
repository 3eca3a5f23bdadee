//go:build !linux && !(windows && amd64)

package hostaccounts

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
)

type unsupportedEnumerator struct{}

func (unsupportedEnumerator) EnumerateAccounts(context.Context, time.Time) ([]accounts.AccountRecord, error) {
	return nil, ErrEnumerationUnsupported
}

// NewDefaultEnumerator reports ErrEnumerationUnsupported on platforms without an account source.
func NewDefaultEnumerator(Options, CommandExecutor, *zap.Logger) Enumerator {
	return unsupportedEnumerator{}
}

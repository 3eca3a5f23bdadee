package hostaccounts

import (
	"context"
	"errors"
	"time"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
)

const (
	// DefaultMinimumUID is the lowest non-root UID treated as a human account.
	DefaultMinimumUID = 1000

	// DefaultMaximumPasswordAgeDays mirrors the Windows default maximum password age policy.
	DefaultMaximumPasswordAgeDays = 42

	// DefaultPasswdPath locates the account database.
	DefaultPasswdPath = "/etc/passwd"

	// DefaultShadowPath locates the shadow password database.
	DefaultShadowPath = "/etc/shadow"

	enumerationUnsupportedMessageConstant = "account enumeration is not supported on this platform"
)

// ErrEnumerationUnsupported indicates no enumerator exists for the running platform.
var ErrEnumerationUnsupported = errors.New(enumerationUnsupportedMessageConstant)

// Enumerator supplies the local account records of the host. Time dependent fields
// such as expiry and password age are resolved against evaluationTime.
type Enumerator interface {
	EnumerateAccounts(executionContext context.Context, evaluationTime time.Time) ([]accounts.AccountRecord, error)
}

// Options configures the platform enumerators.
type Options struct {
	PasswdPath             string
	ShadowPath             string
	LastlogCommand         string
	MinimumUID             int
	MaximumPasswordAgeDays int
}

func (options Options) withDefaults() Options {
	resolved := options
	if len(resolved.PasswdPath) == 0 {
		resolved.PasswdPath = DefaultPasswdPath
	}
	if len(resolved.ShadowPath) == 0 {
		resolved.ShadowPath = DefaultShadowPath
	}
	if len(resolved.LastlogCommand) == 0 {
		resolved.LastlogCommand = DefaultLastlogCommand
	}
	if resolved.MinimumUID <= 0 {
		resolved.MinimumUID = DefaultMinimumUID
	}
	if resolved.MaximumPasswordAgeDays <= 0 {
		resolved.MaximumPasswordAgeDays = DefaultMaximumPasswordAgeDays
	}
	return resolved
}

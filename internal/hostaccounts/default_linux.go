//go:build linux

package hostaccounts

import "go.uber.org/zap"

// NewDefaultEnumerator returns the passwd and shadow backed enumerator.
func NewDefaultEnumerator(options Options, executor CommandExecutor, logger *zap.Logger) Enumerator {
	return NewShadowEnumerator(options, executor, logger)
}

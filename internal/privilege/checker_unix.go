//go:build unix

package privilege

import "golang.org/x/sys/unix"

const rootEffectiveUIDConstant = 0

// NewSystemChecker returns a checker that requires an effective UID of root.
func NewSystemChecker() Checker {
	return CheckerFunc(func() (bool, error) {
		return unix.Geteuid() == rootEffectiveUIDConstant, nil
	})
}

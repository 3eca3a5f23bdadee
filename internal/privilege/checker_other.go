//go:build !unix && !windows

package privilege

import "errors"

const privilegeCheckUnsupportedMessageConstant = "privilege check is not supported on this platform"

// NewSystemChecker returns a checker that always fails on unsupported platforms.
func NewSystemChecker() Checker {
	return CheckerFunc(func() (bool, error) {
		return false, errors.New(privilegeCheckUnsupportedMessageConstant)
	})
}

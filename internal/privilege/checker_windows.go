//go:build windows

package privilege

import "golang.org/x/sys/windows"

// NewSystemChecker returns a checker that requires an elevated process token.
func NewSystemChecker() Checker {
	return CheckerFunc(func() (bool, error) {
		return windows.GetCurrentProcessToken().IsElevated(), nil
	})
}

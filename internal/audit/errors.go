package audit

import "fmt"

const (
	privilegeErrorTemplateConstant   = "privilege check failed: %v"
	enumerationErrorTemplateConstant = "account enumeration failed: %v"
)

// PrivilegeError aborts a run before any account is enumerated.
type PrivilegeError struct {
	Cause error
}

// Error describes the privilege failure.
func (failure PrivilegeError) Error() string {
	return fmt.Sprintf(privilegeErrorTemplateConstant, failure.Cause)
}

// Unwrap exposes the underlying privilege failure.
func (failure PrivilegeError) Unwrap() error {
	return failure.Cause
}

// EnumerationError aborts a run before any report is produced.
type EnumerationError struct {
	Cause error
}

// Error describes the enumeration failure.
func (failure EnumerationError) Error() string {
	return fmt.Sprintf(enumerationErrorTemplateConstant, failure.Cause)
}

// Unwrap exposes the underlying enumeration failure.
func (failure EnumerationError) Unwrap() error {
	return failure.Cause
}

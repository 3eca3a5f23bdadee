package privilege

import "errors"

const administratorRequiredMessageConstant = "administrative privileges are required to audit local accounts"

// ErrAdministratorRequired indicates the caller lacks administrative rights.
var ErrAdministratorRequired = errors.New(administratorRequiredMessageConstant)

// Checker reports whether the current process holds administrative rights.
type Checker interface {
	IsAdministrator() (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func() (bool, error)

// IsAdministrator invokes the wrapped function.
func (checkerFunction CheckerFunc) IsAdministrator() (bool, error) {
	return checkerFunction()
}

// Require returns ErrAdministratorRequired unless the checker confirms administrative rights.
// Checker failures are joined with ErrAdministratorRequired so callers can match either.
func Require(checker Checker) error {
	isAdministrator, checkError := checker.IsAdministrator()
	if checkError != nil {
		return errors.Join(ErrAdministratorRequired, checkError)
	}
	if !isAdministrator {
		return ErrAdministratorRequired
	}
	return nil
}

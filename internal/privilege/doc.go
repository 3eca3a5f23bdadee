// Package privilege verifies that the audit runs with administrative rights.
package privilege

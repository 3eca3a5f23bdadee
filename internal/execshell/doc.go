// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap lifecycle logging and typed
// failures, and OSCommandRunner supplies the default os/exec backed runner used
// to query host utilities such as lastlog.
package execshell

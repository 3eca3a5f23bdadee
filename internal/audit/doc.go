// Package audit implements the local account staleness audit used by the useraudit CLI.
//
// It exposes CommandBuilder for wiring the audit Cobra command, Service for driving
// a run programmatically, and the configuration and error types shared by both. A
// run checks privileges, enumerates accounts, classifies and summarizes them,
// prints the console report, and optionally exports the results.
package audit

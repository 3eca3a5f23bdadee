// Package accounts classifies local operating-system accounts for staleness.
//
// Classify turns one AccountRecord and an EvaluationContext into an AuditResult,
// and Summarize reduces a sequence of results into Summary counts. Both are pure:
// the evaluation time is carried by the context and never read from the clock.
package accounts

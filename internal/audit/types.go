package audit

import "time"

// CommandOptions captures the resolved parameters of one audit run.
type CommandOptions struct {
	InactivityThresholdDays  int
	PasswordAgeThresholdDays int
	ExportPath               string
	ExportFormat             string
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

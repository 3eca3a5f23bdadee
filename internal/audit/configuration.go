package audit

import (
	"strings"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/hostaccounts"
)

const (
	configurationKeySeparatorConstant              = "."
	inactivityThresholdConfigurationKeyConstant    = "days_inactive"
	passwordAgeThresholdConfigurationKeyConstant   = "password_age_days"
	exportPathConfigurationKeyConstant             = "export_path"
	exportFormatConfigurationKeyConstant           = "export_format"
	minimumUIDConfigurationKeyConstant             = "minimum_uid"
	maximumPasswordAgeDaysConfigurationKeyConstant = "maximum_password_age_days"
	lastlogCommandConfigurationKeyConstant         = "lastlog_command"
)

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	InactivityThresholdDays  int    `mapstructure:"days_inactive"`
	PasswordAgeThresholdDays int    `mapstructure:"password_age_days"`
	ExportPath               string `mapstructure:"export_path"`
	ExportFormat             string `mapstructure:"export_format"`
	MinimumUID               int    `mapstructure:"minimum_uid"`
	MaximumPasswordAgeDays   int    `mapstructure:"maximum_password_age_days"`
	LastlogCommand           string `mapstructure:"lastlog_command"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		InactivityThresholdDays:  accounts.DefaultThresholdDays,
		PasswordAgeThresholdDays: accounts.DefaultThresholdDays,
		ExportPath:               "",
		ExportFormat:             "",
		MinimumUID:               hostaccounts.DefaultMinimumUID,
		MaximumPasswordAgeDays:   hostaccounts.DefaultMaximumPasswordAgeDays,
		LastlogCommand:           hostaccounts.DefaultLastlogCommand,
	}
}

// DefaultConfigurationValues returns viper defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefixedKey(prefix, inactivityThresholdConfigurationKeyConstant):    defaults.InactivityThresholdDays,
		prefixedKey(prefix, passwordAgeThresholdConfigurationKeyConstant):   defaults.PasswordAgeThresholdDays,
		prefixedKey(prefix, exportPathConfigurationKeyConstant):             defaults.ExportPath,
		prefixedKey(prefix, exportFormatConfigurationKeyConstant):           defaults.ExportFormat,
		prefixedKey(prefix, minimumUIDConfigurationKeyConstant):             defaults.MinimumUID,
		prefixedKey(prefix, maximumPasswordAgeDaysConfigurationKeyConstant): defaults.MaximumPasswordAgeDays,
		prefixedKey(prefix, lastlogCommandConfigurationKeyConstant):         defaults.LastlogCommand,
	}
}

// Sanitize trims whitespace and restores defaults for unset enumeration settings.
// Thresholds are left untouched so that invalid values surface as errors.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.ExportPath = strings.TrimSpace(configuration.ExportPath)
	sanitized.ExportFormat = strings.ToLower(strings.TrimSpace(configuration.ExportFormat))
	sanitized.LastlogCommand = strings.TrimSpace(configuration.LastlogCommand)

	if len(sanitized.LastlogCommand) == 0 {
		sanitized.LastlogCommand = defaults.LastlogCommand
	}
	if sanitized.MinimumUID <= 0 {
		sanitized.MinimumUID = defaults.MinimumUID
	}
	if sanitized.MaximumPasswordAgeDays <= 0 {
		sanitized.MaximumPasswordAgeDays = defaults.MaximumPasswordAgeDays
	}

	return sanitized
}

func prefixedKey(prefix string, key string) string {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return key
	}
	return trimmedPrefix + configurationKeySeparatorConstant + key
}

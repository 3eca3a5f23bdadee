package audit

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/execshell"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/hostaccounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/privilege"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/report"
)

const (
	commandNameConstant                  = "audit"
	commandShortDescriptionConstant      = "Audit local accounts for inactivity and password age"
	commandLongDescriptionConstant       = "audit enumerates local user accounts, flags accounts that have not logged on or changed their password within the configured thresholds, prints a report with summary counts, and optionally exports the results."
	flagDaysInactiveNameConstant         = "days-inactive"
	flagDaysInactiveDescriptionConstant  = "Days without a logon after which an account is reported as inactive"
	flagPasswordAgeNameConstant          = "password-age-days"
	flagPasswordAgeDescriptionConstant   = "Days after which a password is reported as old"
	flagExportPathNameConstant           = "export-path"
	flagExportPathDescriptionConstant    = "File that receives the exported results"
	flagExportFormatNameConstant         = "export-format"
	flagExportFormatDescriptionConstant  = "Export encoding (csv, json, yaml); inferred from the export path when empty"
	invalidThresholdFlagTemplateConstant = "%w: --%s must be positive, got %d"
)

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider         LoggerProvider
	ConfigurationProvider  ConfigurationProvider
	PrivilegeChecker       privilege.Checker
	Enumerator             hostaccounts.Enumerator
	CommandRunner          execshell.CommandRunner
	ExportWriter           ExportWriter
	RunIdentifierGenerator RunIdentifierGenerator
	Clock                  Clock
}

// Build constructs the cobra command for local account audits.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandNameConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.run,
	}

	defaults := DefaultCommandConfiguration()
	command.Flags().Int(flagDaysInactiveNameConstant, defaults.InactivityThresholdDays, flagDaysInactiveDescriptionConstant)
	command.Flags().Int(flagPasswordAgeNameConstant, defaults.PasswordAgeThresholdDays, flagPasswordAgeDescriptionConstant)
	command.Flags().String(flagExportPathNameConstant, defaults.ExportPath, flagExportPathDescriptionConstant)
	command.Flags().String(flagExportFormatNameConstant, defaults.ExportFormat, flagExportFormatDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	options, optionsError := builder.parseOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	enumerator, enumeratorError := resolveEnumerator(builder.Enumerator, builder.CommandRunner, configuration, logger)
	if enumeratorError != nil {
		return enumeratorError
	}

	service := NewService(
		builder.PrivilegeChecker,
		enumerator,
		builder.ExportWriter,
		builder.RunIdentifierGenerator,
		logger,
		command.OutOrStdout(),
		command.ErrOrStderr(),
		builder.resolveClock(),
	)
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, configuration CommandConfiguration) (CommandOptions, error) {
	options := CommandOptions{
		InactivityThresholdDays:  configuration.InactivityThresholdDays,
		PasswordAgeThresholdDays: configuration.PasswordAgeThresholdDays,
		ExportPath:               configuration.ExportPath,
		ExportFormat:             configuration.ExportFormat,
	}

	flagSet := command.Flags()
	if flagSet.Changed(flagDaysInactiveNameConstant) {
		options.InactivityThresholdDays, _ = flagSet.GetInt(flagDaysInactiveNameConstant)
	}
	if flagSet.Changed(flagPasswordAgeNameConstant) {
		options.PasswordAgeThresholdDays, _ = flagSet.GetInt(flagPasswordAgeNameConstant)
	}
	if flagSet.Changed(flagExportPathNameConstant) {
		exportPath, _ := flagSet.GetString(flagExportPathNameConstant)
		options.ExportPath = CommandConfiguration{ExportPath: exportPath}.Sanitize().ExportPath
	}
	if flagSet.Changed(flagExportFormatNameConstant) {
		exportFormat, _ := flagSet.GetString(flagExportFormatNameConstant)
		options.ExportFormat = CommandConfiguration{ExportFormat: exportFormat}.Sanitize().ExportFormat
	}

	if options.InactivityThresholdDays <= 0 {
		return CommandOptions{}, fmt.Errorf(invalidThresholdFlagTemplateConstant, accounts.ErrInvalidThreshold, flagDaysInactiveNameConstant, options.InactivityThresholdDays)
	}
	if options.PasswordAgeThresholdDays <= 0 {
		return CommandOptions{}, fmt.Errorf(invalidThresholdFlagTemplateConstant, accounts.ErrInvalidThreshold, flagPasswordAgeNameConstant, options.PasswordAgeThresholdDays)
	}
	if len(options.ExportFormat) > 0 {
		if _, formatError := report.ResolveExportFormat(options.ExportFormat, options.ExportPath); formatError != nil {
			return CommandOptions{}, formatError
		}
	}

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveClock() Clock {
	if builder.Clock == nil {
		return SystemClock{}
	}
	return builder.Clock
}

package audit

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/accounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/hostaccounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/privilege"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/report"
)

const (
	exportWarningTemplateConstant    = "WARNING: unable to export audit results to %s: %v\n"
	exportCompletedTemplateConstant  = "\nResults exported to %s\n"
	runStartedMessageConstant        = "account audit started"
	runCompletedMessageConstant      = "account audit completed"
	privilegeRejectedMessageConstant = "administrative privileges check failed"
	enumerationFailedMessageConstant = "account enumeration failed"
	exportFailedMessageConstant      = "audit export failed"
	exportCompletedMessageConstant   = "audit export written"
	logFieldRunIdentifierConstant    = "run_id"
	logFieldInactivityDaysConstant   = "inactivity_threshold_days"
	logFieldPasswordAgeDaysConstant  = "password_age_threshold_days"
	logFieldTotalConstant            = "total"
	logFieldEnabledConstant          = "enabled"
	logFieldDisabledConstant         = "disabled"
	logFieldInactiveConstant         = "inactive"
	logFieldOldPasswordConstant      = "old_password"
	logFieldNeverLoggedOnConstant    = "never_logged_on"
	logFieldExportPathConstant       = "export_path"
	logFieldExportFormatConstant     = "export_format"
)

// Service coordinates privilege checks, enumeration, classification, reporting, and export.
type Service struct {
	privilegeChecker       privilege.Checker
	enumerator             hostaccounts.Enumerator
	exportWriter           ExportWriter
	runIdentifierGenerator RunIdentifierGenerator
	logger                 *zap.Logger
	outputWriter           io.Writer
	errorWriter            io.Writer
	clock                  Clock
}

// NewService constructs a Service using the provided dependencies.
func NewService(privilegeChecker privilege.Checker, enumerator hostaccounts.Enumerator, exportWriter ExportWriter, runIdentifierGenerator RunIdentifierGenerator, logger *zap.Logger, outputWriter io.Writer, errorWriter io.Writer, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &Service{
		privilegeChecker:       resolvePrivilegeChecker(privilegeChecker),
		enumerator:             enumerator,
		exportWriter:           resolveExportWriter(exportWriter),
		runIdentifierGenerator: resolveRunIdentifierGenerator(runIdentifierGenerator),
		logger:                 logger,
		outputWriter:           outputWriter,
		errorWriter:            errorWriter,
		clock:                  clock,
	}
}

// Run executes one audit according to the provided options.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	runIdentifier := service.runIdentifierGenerator()
	runLogger := service.logger.With(zap.String(logFieldRunIdentifierConstant, runIdentifier))
	runLogger.Info(
		runStartedMessageConstant,
		zap.Int(logFieldInactivityDaysConstant, options.InactivityThresholdDays),
		zap.Int(logFieldPasswordAgeDaysConstant, options.PasswordAgeThresholdDays),
	)

	if privilegeError := privilege.Require(service.privilegeChecker); privilegeError != nil {
		runLogger.Error(privilegeRejectedMessageConstant, zap.Error(privilegeError))
		return PrivilegeError{Cause: privilegeError}
	}

	evaluationContext, contextError := accounts.NewEvaluationContext(service.clock.Now(), options.InactivityThresholdDays, options.PasswordAgeThresholdDays)
	if contextError != nil {
		return contextError
	}

	records, enumerationError := service.enumerator.EnumerateAccounts(executionContext, evaluationContext.Now)
	if enumerationError != nil {
		runLogger.Error(enumerationFailedMessageConstant, zap.Error(enumerationError))
		return EnumerationError{Cause: enumerationError}
	}

	results := accounts.ClassifyAll(records, evaluationContext)
	summary := accounts.Summarize(results)

	runLogger.Info(
		runCompletedMessageConstant,
		zap.Int(logFieldTotalConstant, summary.Total),
		zap.Int(logFieldEnabledConstant, summary.EnabledCount),
		zap.Int(logFieldDisabledConstant, summary.DisabledCount),
		zap.Int(logFieldInactiveConstant, summary.InactiveCount),
		zap.Int(logFieldOldPasswordConstant, summary.OldPasswordCount),
		zap.Int(logFieldNeverLoggedOnConstant, summary.NeverLoggedOnCount),
	)

	if renderError := report.NewConsoleRenderer(service.outputWriter).Render(evaluationContext, results, summary); renderError != nil {
		return renderError
	}

	if len(options.ExportPath) == 0 {
		return nil
	}

	service.export(runLogger, runIdentifier, options, evaluationContext, results, summary)
	return nil
}

// export never fails the run; problems surface as a warning on the error writer.
func (service *Service) export(logger *zap.Logger, runIdentifier string, options CommandOptions, evaluationContext accounts.EvaluationContext, results []accounts.AuditResult, summary accounts.Summary) {
	exportFormat, formatError := report.ResolveExportFormat(options.ExportFormat, options.ExportPath)
	if formatError != nil {
		service.reportExportFailure(logger, options.ExportPath, formatError)
		return
	}

	document := report.NewDocument(runIdentifier, evaluationContext, results, summary)
	if writeError := service.exportWriter(options.ExportPath, exportFormat, document); writeError != nil {
		service.reportExportFailure(logger, options.ExportPath, writeError)
		return
	}

	logger.Info(
		exportCompletedMessageConstant,
		zap.String(logFieldExportPathConstant, options.ExportPath),
		zap.String(logFieldExportFormatConstant, string(exportFormat)),
	)
	fmt.Fprintf(service.outputWriter, exportCompletedTemplateConstant, options.ExportPath)
}

func (service *Service) reportExportFailure(logger *zap.Logger, exportPath string, failure error) {
	logger.Warn(exportFailedMessageConstant, zap.String(logFieldExportPathConstant, exportPath), zap.Error(failure))
	fmt.Fprintf(service.errorWriter, exportWarningTemplateConstant, exportPath, failure)
}

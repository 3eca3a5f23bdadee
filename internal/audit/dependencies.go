package audit

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/execshell"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/hostaccounts"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/privilege"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/report"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted audit configuration.
type ConfigurationProvider func() CommandConfiguration

// ExportWriter persists an audit document in the requested format.
type ExportWriter func(exportPath string, format report.ExportFormat, document report.Document) error

// RunIdentifierGenerator produces the identifier attached to a single run.
type RunIdentifierGenerator func() string

func resolvePrivilegeChecker(checker privilege.Checker) privilege.Checker {
	if checker != nil {
		return checker
	}
	return privilege.NewSystemChecker()
}

func resolveEnumerator(enumerator hostaccounts.Enumerator, runner execshell.CommandRunner, configuration CommandConfiguration, logger *zap.Logger) (hostaccounts.Enumerator, error) {
	if enumerator != nil {
		return enumerator, nil
	}

	commandRunner := runner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, executorError
	}

	options := hostaccounts.Options{
		LastlogCommand:         configuration.LastlogCommand,
		MinimumUID:             configuration.MinimumUID,
		MaximumPasswordAgeDays: configuration.MaximumPasswordAgeDays,
	}
	return hostaccounts.NewDefaultEnumerator(options, shellExecutor, logger), nil
}

func resolveExportWriter(writer ExportWriter) ExportWriter {
	if writer != nil {
		return writer
	}
	return report.WriteExportFile
}

func resolveRunIdentifierGenerator(generator RunIdentifierGenerator) RunIdentifierGenerator {
	if generator != nil {
		return generator
	}
	return uuid.NewString
}

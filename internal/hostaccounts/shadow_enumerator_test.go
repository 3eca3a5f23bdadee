package hostaccounts_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ColinR77/Computer-Management-User-Audit/internal/execshell"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/hostaccounts"
)

const (
	testPasswdFileNameConstant            = "passwd"
	testShadowFileNameConstant            = "shadow"
	testEnumeratorSubtestTemplateConstant = "%d_%s"
	testExpiringPasswdContentConstant     = "contractor:x:1005:1005:Contractor:/home/contractor:/bin/bash\n"
	testExpiringShadowContentConstant     = "contractor:$6$hash:19600:0:99999:7::19723:\n"
)

const testPasswdContentConstant = `root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
alice:x:1000:1000:Alice Example,Room 12:/home/alice:/bin/bash
bob:x:1001:1001:Bob:/home/bob:/bin/zsh
newhire:x:1002:1002::/home/newhire:/bin/bash
`

const testShadowContentConstant = `root:$6$hash:19600:0:99999:7:::
daemon:*:19000:0:99999:7:::
alice:$6$hash:19600:0:90:7:::
bob:!$6$hash:19000:0:99999:7:::
`

const testLastlogOutputConstant = `Username         Port     From             Latest
root             pts/0    10.0.0.5         Mon Jan  1 10:00:00 +0000 2024
daemon                                     **Never logged in**
alice            tty1                      Fri Dec 15 08:30:00 +0000 2023
bob                                        **Never logged in**
newhire                                    **Never logged in**
`

var testEvaluationTime = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

type stubCommandExecutor struct {
	result           execshell.ExecutionResult
	err              error
	recordedCommands []execshell.ShellCommand
}

func (executor *stubCommandExecutor) ExecuteCommand(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, command)
	return executor.result, executor.err
}

func writeAccountDatabases(testInstance *testing.T, passwdContent string, shadowContent string) hostaccounts.Options {
	testInstance.Helper()

	temporaryDirectory := testInstance.TempDir()
	passwdPath := filepath.Join(temporaryDirectory, testPasswdFileNameConstant)
	shadowPath := filepath.Join(temporaryDirectory, testShadowFileNameConstant)
	require.NoError(testInstance, os.WriteFile(passwdPath, []byte(passwdContent), 0o600))
	require.NoError(testInstance, os.WriteFile(shadowPath, []byte(shadowContent), 0o600))

	return hostaccounts.Options{
		PasswdPath: passwdPath,
		ShadowPath: shadowPath,
	}
}

func TestShadowEnumeratorEnumeratesHumanAccounts(testInstance *testing.T) {
	options := writeAccountDatabases(testInstance, testPasswdContentConstant, testShadowContentConstant)
	executor := &stubCommandExecutor{result: execshell.ExecutionResult{StandardOutput: testLastlogOutputConstant}}

	enumerator := hostaccounts.NewShadowEnumerator(options, executor, zap.NewNop())
	records, enumerationError := enumerator.EnumerateAccounts(context.Background(), testEvaluationTime)
	require.NoError(testInstance, enumerationError)

	require.Len(testInstance, records, 4)
	require.Equal(testInstance, []string{"root", "alice", "bob", "newhire"}, []string{records[0].Username, records[1].Username, records[2].Username, records[3].Username})

	require.Len(testInstance, executor.recordedCommands, 1)
	require.Equal(testInstance, execshell.CommandLastlog, executor.recordedCommands[0].Name)
	require.Equal(testInstance, map[string]string{"LC_ALL": "C"}, executor.recordedCommands[0].Details.Environment)

	root := records[0]
	require.True(testInstance, root.Enabled)
	require.NotNil(testInstance, root.LastLogon)
	require.Nil(testInstance, root.PasswordExpires)

	alice := records[1]
	require.Equal(testInstance, "Alice Example", alice.FullName)
	require.Equal(testInstance, "Room 12", alice.Description)
	require.NotNil(testInstance, alice.PasswordExpires)
	require.True(testInstance, time.Date(2023, time.December, 15, 8, 30, 0, 0, time.UTC).Equal(*alice.LastLogon))

	bob := records[2]
	require.False(testInstance, bob.Enabled)
	require.Nil(testInstance, bob.LastLogon)

	newhire := records[3]
	require.True(testInstance, newhire.Enabled)
	require.Nil(testInstance, newhire.PasswordLastSet)
	require.Nil(testInstance, newhire.LastLogon)
}

func TestShadowEnumeratorToleratesMissingLastlog(testInstance *testing.T) {
	options := writeAccountDatabases(testInstance, testPasswdContentConstant, testShadowContentConstant)
	executor := &stubCommandExecutor{err: execshell.CommandExecutionError{Cause: errors.New("executable file not found")}}

	observerCore, observerLogs := observer.New(zap.WarnLevel)
	enumerator := hostaccounts.NewShadowEnumerator(options, executor, zap.New(observerCore))

	records, enumerationError := enumerator.EnumerateAccounts(context.Background(), testEvaluationTime)
	require.NoError(testInstance, enumerationError)
	require.Len(testInstance, records, 4)
	for _, record := range records {
		require.Nil(testInstance, record.LastLogon)
	}
	require.Equal(testInstance, 1, observerLogs.Len())
}

func TestShadowEnumeratorWarnsOnUnreadableLastlogRows(testInstance *testing.T) {
	options := writeAccountDatabases(testInstance, testPasswdContentConstant, testShadowContentConstant)
	lastlogOutput := testLastlogOutputConstant + "bob              pts/2                     yesterday around lunch time ok\n"
	executor := &stubCommandExecutor{result: execshell.ExecutionResult{StandardOutput: lastlogOutput}}

	observerCore, observerLogs := observer.New(zap.WarnLevel)
	enumerator := hostaccounts.NewShadowEnumerator(options, executor, zap.New(observerCore))

	records, enumerationError := enumerator.EnumerateAccounts(context.Background(), testEvaluationTime)
	require.NoError(testInstance, enumerationError)
	require.Nil(testInstance, records[2].LastLogon)

	warnings := observerLogs.All()
	require.Len(testInstance, warnings, 1)
	require.Equal(testInstance, "bob", warnings[0].ContextMap()["username"])
}

func TestShadowEnumeratorFailsWhenDatabasesUnreadable(testInstance *testing.T) {
	options := writeAccountDatabases(testInstance, testPasswdContentConstant, testShadowContentConstant)
	options.ShadowPath = filepath.Join(testInstance.TempDir(), "missing")

	enumerator := hostaccounts.NewShadowEnumerator(options, nil, nil)
	records, enumerationError := enumerator.EnumerateAccounts(context.Background(), testEvaluationTime)

	require.Error(testInstance, enumerationError)
	require.ErrorIs(testInstance, enumerationError, os.ErrNotExist)
	require.Nil(testInstance, records)
}

func TestShadowEnumeratorHonorsMinimumUID(testInstance *testing.T) {
	options := writeAccountDatabases(testInstance, testPasswdContentConstant, testShadowContentConstant)
	options.MinimumUID = 1002

	enumerator := hostaccounts.NewShadowEnumerator(options, nil, nil)
	records, enumerationError := enumerator.EnumerateAccounts(context.Background(), testEvaluationTime)
	require.NoError(testInstance, enumerationError)

	require.Len(testInstance, records, 2)
	require.Equal(testInstance, "root", records[0].Username)
	require.Equal(testInstance, "newhire", records[1].Username)
}

func TestShadowEnumeratorResolvesExpiryAtEvaluationTime(testInstance *testing.T) {
	expiryInstant := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name            string
		evaluationTime  time.Time
		expectedEnabled bool
	}{
		{name: "before_expiry", evaluationTime: expiryInstant.Add(-time.Second), expectedEnabled: true},
		{name: "at_expiry", evaluationTime: expiryInstant, expectedEnabled: false},
		{name: "after_expiry", evaluationTime: expiryInstant.AddDate(0, 0, 3), expectedEnabled: false},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testEnumeratorSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			options := writeAccountDatabases(testInstance, testExpiringPasswdContentConstant, testExpiringShadowContentConstant)

			enumerator := hostaccounts.NewShadowEnumerator(options, nil, nil)
			records, enumerationError := enumerator.EnumerateAccounts(context.Background(), testCase.evaluationTime)
			require.NoError(testInstance, enumerationError)
			require.Len(testInstance, records, 1)
			require.Equal(testInstance, testCase.expectedEnabled, records[0].Enabled)
		})
	}
}

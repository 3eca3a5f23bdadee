package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ColinR77/Computer-Management-User-Audit/cmd/cli"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/audit"
	"github.com/ColinR77/Computer-Management-User-Audit/internal/utils"
)

func TestEmbeddedDefaultsMatchCommandDefaults(testInstance *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(testInstance)

	require.Equal(testInstance, audit.DefaultCommandConfiguration(), configuration.Audit)
	require.Equal(testInstance, string(utils.LogLevelWarn), configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatConsole), configuration.Common.LogFormat)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstCopy, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)
	require.NotEmpty(testInstance, firstCopy)

	originalContent := bytes.Clone(firstCopy)
	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, originalContent, secondCopy)
}

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, _ := cli.EmbeddedDefaultConfiguration()

	var rawConfiguration map[string]any
	require.NoError(testingInstance, yaml.Unmarshal(configurationData, &rawConfiguration))

	var configuration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration})
	require.NoError(testingInstance, decoderError)
	require.NoError(testingInstance, decoder.Decode(rawConfiguration))

	return configuration
}

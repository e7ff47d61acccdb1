package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"

	"github.com/temirov/devhealth/internal/utils"
)

const (
	testEnvironmentPrefixConstant                     = "TESTDEVHEALTH"
	testApplicationNameConstant                       = "devhealth"
	testCommonSectionKeyConstant                      = "common"
	testLogLevelKeyConstant                           = testCommonSectionKeyConstant + ".log_level"
	testDefaultLogLevelConstant                       = "info"
	testConfiguredLogLevelConstant                    = "debug"
	testOverriddenLogLevelConstant                    = "error"
	testFileLogLevelConstant                          = "warn"
	testConfigFileNameConstant                        = "config.yaml"
	testConfigContentTemplateConstant                 = "common:\n  log_level: %s\n"
	testSkipDirectoriesContentConstant                = "scan:\n  skip_directories: vendor,target\n"
	testMalformedConfigContentConstant                = "common: [unterminated\n"
	testCaseEmbeddedMessageConstant                   = "embedded configuration merges"
	testCaseDefaultsMessageConstant                   = "defaults are applied"
	testCaseFileMessageConstant                       = "config file overrides embedded values"
	testCaseEnvironmentMessageConstant                = "environment overrides file"
	testConfigurationNameConstant                     = "config"
	testConfigurationTypeConstant                     = "yaml"
	configurationLoaderSubtestNameTemplateConstant    = "%d_%s"
	testEmbeddedLogLevelConstant                      = "debug"
	testXDGConfigHomeDirectoryNameConstant            = "config"
	testCaseSearchPathWorkingDirectoryMessageConstant = "searches working directory"
	testCaseSearchPathXDGDirectoryMessageConstant     = "searches xdg configuration directory"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
	Scan   configurationScanFixture   `mapstructure:"scan"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type configurationScanFixture struct {
	SkipDirectories []string `mapstructure:"skip_directories"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             testCaseEmbeddedMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			expectedLogLevel: testEmbeddedLogLevelConstant,
		},
		{
			name:             testCaseDefaultsMessageConstant,
			expectedLogLevel: testDefaultLogLevelConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			embeddedLogLevel: testDefaultLogLevelConstant,
			fileLogLevel:     testConfiguredLogLevelConstant,
			expectedLogLevel: testConfiguredLogLevelConstant,
		},
		{
			name:                testCaseEnvironmentMessageConstant,
			embeddedLogLevel:    testDefaultLogLevelConstant,
			fileLogLevel:        testFileLogLevelConstant,
			environmentLogLevel: testOverriddenLogLevelConstant,
			expectedLogLevel:    testOverriddenLogLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileLogLevel)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentLogLevel) > 0 {
				environmentVariableName := fmt.Sprintf("%s_%s", testEnvironmentPrefixConstant, strings.ToUpper(strings.ReplaceAll(testLogLevelKeyConstant, ".", "_")))
				testInstance.Setenv(environmentVariableName, testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			if len(testCase.embeddedLogLevel) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedLogLevel)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testLogLevelKeyConstant: testDefaultLogLevelConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderDecodesCommaSeparatedLists(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testSkipDirectoriesContentConstant), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"vendor", "target"}, loadedConfiguration.Scan.SkipDirectories)
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testMalformedConfigContentConstant), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, nil, &loadedConfiguration)
	require.Error(testInstance, loadError)
}

func TestConfigurationLoaderSearchPaths(testInstance *testing.T) {
	testCases := []struct {
		name                         string
		configurationDirectorySelect func(workingDirectoryPath string, xdgConfigurationDirectoryPath string) string
	}{
		{
			name: testCaseSearchPathWorkingDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, xdgConfigurationDirectoryPath string) string {
				return workingDirectoryPath
			},
		},
		{
			name: testCaseSearchPathXDGDirectoryMessageConstant,
			configurationDirectorySelect: func(workingDirectoryPath string, xdgConfigurationDirectoryPath string) string {
				return xdgConfigurationDirectoryPath
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			workingDirectoryPath := testInstance.TempDir()
			homeDirectoryPath := testInstance.TempDir()
			xdgConfigHomeDirectoryPath := filepath.Join(homeDirectoryPath, testXDGConfigHomeDirectoryNameConstant)

			testInstance.Cleanup(xdg.Reload)
			testInstance.Setenv("HOME", homeDirectoryPath)
			testInstance.Setenv("XDG_CONFIG_HOME", xdgConfigHomeDirectoryPath)
			xdg.Reload()

			searchPaths := utils.DefaultConfigurationSearchPaths(testApplicationNameConstant)
			require.Len(testInstance, searchPaths, 2)
			xdgConfigurationDirectoryPath := searchPaths[1]
			require.Equal(testInstance, filepath.Join(xdgConfigHomeDirectoryPath, testApplicationNameConstant), xdgConfigurationDirectoryPath)

			selectedConfigurationDirectoryPath := testCase.configurationDirectorySelect(workingDirectoryPath, xdgConfigurationDirectoryPath)
			require.NoError(testInstance, os.MkdirAll(selectedConfigurationDirectoryPath, 0o755))

			configurationFilePath := filepath.Join(selectedConfigurationDirectoryPath, testConfigFileNameConstant)
			configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testConfiguredLogLevelConstant)
			require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

			configurationLoader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				[]string{workingDirectoryPath, xdgConfigurationDirectoryPath},
			)

			defaultValues := map[string]any{
				testLogLevelKeyConstant: testDefaultLogLevelConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration("", defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testConfiguredLogLevelConstant, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

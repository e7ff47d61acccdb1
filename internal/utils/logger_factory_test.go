package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devhealth/internal/utils"
)

const (
	testLoggerFactoryCaseSupportedFormatConstant   = "supported_log_level_%s_format_%s"
	testLoggerFactoryCaseUnsupportedLevelConstant  = "unsupported_log_level"
	testLoggerFactoryCaseUnsupportedFormatConstant = "unsupported_log_format"
	testLoggerFactoryCaseMixedCaseConstant         = "mixed_case_values"
	testLoggerFactorySubtestTemplateConstant       = "%d_%s"
	testInvalidLogLevelConstant                    = "invalid"
	testInvalidLogFormatConstant                   = "invalid"
	testLogMessageConstant                         = "logger_factory_test_message"
	testDebugLogMessageConstant                    = "logger_factory_debug_message"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectError         bool
		expectStructuredLog bool
		expectDebugMessage  bool
	}{
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
			expectDebugMessage:  true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:               fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
		},
		{
			name:               testLoggerFactoryCaseMixedCaseConstant,
			requestedLogLevel:  utils.LogLevel(" INFO "),
			requestedLogFormat: utils.LogFormat("Console"),
		},
		{
			name:               testLoggerFactoryCaseUnsupportedLevelConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedFormatConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			loggerFactory := utils.NewLoggerFactoryWithOutput(outputBuffer)

			logger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)

			logger.Debug(testDebugLogMessageConstant)
			logger.Info(testLogMessageConstant)

			capturedOutput := bytes.TrimSpace(outputBuffer.Bytes())
			require.NotEmpty(testInstance, capturedOutput)
			require.Contains(testInstance, string(capturedOutput), testLogMessageConstant)

			if testCase.expectDebugMessage {
				require.Contains(testInstance, string(capturedOutput), testDebugLogMessageConstant)
			} else {
				require.NotContains(testInstance, string(capturedOutput), testDebugLogMessageConstant)
			}

			lastLine := capturedOutput
			if separatorIndex := bytes.LastIndexByte(capturedOutput, '\n'); separatorIndex >= 0 {
				lastLine = capturedOutput[separatorIndex+1:]
			}
			require.Equal(testInstance, testCase.expectStructuredLog, json.Valid(lastLine))
		})
	}
}

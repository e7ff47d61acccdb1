package flags_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/devhealth/internal/utils/flags"
)

func TestChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		choice         flags.Choice
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstValue",
			choice:         flags.Choice{Default: "text", Values: []string{"text", "json", "yaml", "markdown"}},
			description:    "Report output format",
			expectedOutput: "`<TEXT|json|yaml|markdown>` Report output format",
		},
		{
			name:           "DefaultLaterValue",
			choice:         flags.Choice{Default: "console", Values: []string{"structured", "console"}},
			description:    "Diagnostic log encoding",
			expectedOutput: "`<structured|CONSOLE>` Diagnostic log encoding",
		},
		{
			name:           "EmptyDescription",
			choice:         flags.Choice{Default: "json", Values: []string{"text", "json"}},
			expectedOutput: "`<text|JSON>`",
		},
		{
			name:           "DuplicateValuesIgnored",
			choice:         flags.Choice{Default: "yaml", Values: []string{"yaml", "YAML", "text", "text", " "}},
			description:    "Select a renderer",
			expectedOutput: "`<YAML|text>` Select a renderer",
		},
		{
			name:           "NoDefaultHighlighted",
			choice:         flags.Choice{Values: []string{" debug ", "info"}},
			description:    "Log level",
			expectedOutput: "`<debug|info>` Log level",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedOutput, testCase.choice.Usage(testCase.description))
		})
	}
}

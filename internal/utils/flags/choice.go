package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix  = "<"
	choicePlaceholderSuffix  = ">"
	choiceSeparatorLiteral   = "|"
	choiceUsageEmptyTemplate = "`%s`"
	choiceUsageFullTemplate  = "`%s` %s"
)

// Choice describes a string flag restricted to a fixed list of values.
type Choice struct {
	Default string
	Values  []string
}

// Usage renders the flag help text with the default value capitalized inside the placeholder.
func (choice Choice) Usage(description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(choice.displayValues(), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// displayValues trims and deduplicates values case-insensitively, keeping first occurrences.
func (choice Choice) displayValues() []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(choice.Default))
	displayed := make([]string, 0, len(choice.Values))
	seen := make(map[string]struct{}, len(choice.Values))

	for _, value := range choice.Values {
		trimmedValue := strings.TrimSpace(value)
		normalizedValue := strings.ToLower(trimmedValue)
		if len(normalizedValue) == 0 {
			continue
		}
		if _, exists := seen[normalizedValue]; exists {
			continue
		}
		seen[normalizedValue] = struct{}{}

		if normalizedValue == normalizedDefault {
			trimmedValue = strings.ToUpper(trimmedValue)
		}
		displayed = append(displayed, trimmedValue)
	}

	return displayed
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	checkOperationNameConstant              = "check"
	scanOperationNameConstant               = "scan"
	operationNameMissingMessageConstant     = "operation name is required"
	duplicateOperationErrorTemplateConstant = "operation %q is configured more than once"
	unknownOperationErrorTemplateConstant   = "operation %q is not supported"
	operationDecoderErrorTemplateConstant   = "unable to prepare decoder for operation %q: %w"
	operationDecodeErrorTemplateConstant    = "invalid options for operation %q: %w"
	operationOptionsSliceSeparatorConstant  = ","
	operationConfigurationTagNameConstant   = "mapstructure"
)

// ErrOperationNameMissing indicates an operation block without an operation name.
var ErrOperationNameMissing = errors.New(operationNameMissingMessageConstant)

// ApplicationOperationConfiguration describes one operation block of the configuration file.
type ApplicationOperationConfiguration struct {
	Name    string         `mapstructure:"operation"`
	Options map[string]any `mapstructure:"with"`
}

// DuplicateOperationConfigurationError reports an operation configured more than once.
type DuplicateOperationConfigurationError struct {
	OperationName string
}

// Error describes the duplicated operation.
func (duplicateError DuplicateOperationConfigurationError) Error() string {
	return fmt.Sprintf(duplicateOperationErrorTemplateConstant, duplicateError.OperationName)
}

// UnknownOperationConfigurationError reports an operation name that matches no command.
type UnknownOperationConfigurationError struct {
	OperationName string
}

// Error describes the unsupported operation.
func (unknownError UnknownOperationConfigurationError) Error() string {
	return fmt.Sprintf(unknownOperationErrorTemplateConstant, unknownError.OperationName)
}

type operationConfigurations struct {
	options map[string]map[string]any
}

func supportedOperationNames() []string {
	return []string{checkOperationNameConstant, scanOperationNameConstant}
}

func normalizeOperationName(operationName string) string {
	return strings.ToLower(strings.TrimSpace(operationName))
}

func newOperationConfigurations(definitions []ApplicationOperationConfiguration) (operationConfigurations, error) {
	supported := make(map[string]struct{})
	for _, operationName := range supportedOperationNames() {
		supported[operationName] = struct{}{}
	}

	configurations := operationConfigurations{options: make(map[string]map[string]any, len(definitions))}
	for _, definition := range definitions {
		normalizedName := normalizeOperationName(definition.Name)
		if len(normalizedName) == 0 {
			return operationConfigurations{}, ErrOperationNameMissing
		}
		if _, known := supported[normalizedName]; !known {
			return operationConfigurations{}, UnknownOperationConfigurationError{OperationName: normalizedName}
		}
		if _, exists := configurations.options[normalizedName]; exists {
			return operationConfigurations{}, DuplicateOperationConfigurationError{OperationName: normalizedName}
		}

		duplicatedOptions := make(map[string]any, len(definition.Options))
		for optionKey, optionValue := range definition.Options {
			duplicatedOptions[optionKey] = optionValue
		}
		configurations.options[normalizedName] = duplicatedOptions
	}

	return configurations, nil
}

// decode fills target with the options of the named operation. Missing operations leave target untouched.
func (configurations operationConfigurations) decode(operationName string, target any) error {
	normalizedName := normalizeOperationName(operationName)
	options, exists := configurations.options[normalizedName]
	if !exists {
		return nil
	}

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          operationConfigurationTagNameConstant,
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(operationOptionsSliceSeparatorConstant),
	})
	if decoderError != nil {
		return fmt.Errorf(operationDecoderErrorTemplateConstant, normalizedName, decoderError)
	}

	if decodeError := decoder.Decode(options); decodeError != nil {
		return fmt.Errorf(operationDecodeErrorTemplateConstant, normalizedName, decodeError)
	}
	return nil
}

func (configurations operationConfigurations) names() []string {
	names := make([]string, 0, len(configurations.options))
	for _, operationName := range supportedOperationNames() {
		if _, exists := configurations.options[operationName]; exists {
			names = append(names, operationName)
		}
	}
	return names
}

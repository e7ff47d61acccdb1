package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/devhealth/internal/health"
	"github.com/temirov/devhealth/internal/utils"
	"github.com/temirov/devhealth/internal/utils/flags"
)

const (
	applicationNameConstant                        = "devhealth"
	applicationShortDescriptionConstant            = "Report the health of git repositories and dependency manifests"
	applicationLongDescriptionConstant             = "devhealth walks a directory tree, inspects every git repository it finds, and summarizes the dependency manifests of each project."
	configFileFlagNameConstant                     = "config"
	configFileFlagUsageConstant                    = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                       = "log-level"
	logLevelFlagUsageConstant                      = "Override the configured log level."
	logFormatFlagNameConstant                      = "log-format"
	logFormatFlagUsageConstant                     = "Override the configured log format."
	commonConfigurationKeyConstant                 = "common"
	commonLogLevelConfigKeyConstant                = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant               = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant                      = "DEVHEALTH"
	configurationSearchPathEnvironmentNameConstant = environmentPrefixConstant + "_CONFIG_SEARCH_PATH"
	configurationNameConstant                      = "config"
	configurationTypeConstant                      = "yaml"
	configurationInitializedMessageConstant        = "configuration initialized"
	configurationLogLevelFieldConstant             = "log_level"
	configurationLogFormatFieldConstant            = "log_format"
	configurationFileFieldConstant                 = "config_file"
	configurationOperationsFieldConstant           = "operations"
	configurationLoadErrorTemplateConstant         = "unable to load configuration: %w"
	operationConfigurationErrorTemplateConstant    = "invalid operation configuration: %w"
	loggerCreationErrorTemplateConstant            = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                = "unable to flush logger: %w"
	commandLookupErrorTemplateConstant             = "unable to locate command %q: %w"
	rootCommandInfoMessageConstant                 = "devhealth CLI executed"
	rootCommandDebugMessageConstant                = "devhealth CLI diagnostics"
	logFieldCommandNameConstant                    = "command_name"
	logFieldArgumentCountConstant                  = "argument_count"
	logFieldArgumentsConstant                      = "arguments"
	loggerNotInitializedMessageConstant            = "logger not initialized"
	defaultLogLevelConstant                        = utils.LogLevelError
	defaultLogFormatConstant                       = utils.LogFormatConsole
	configurationSearchPathSeparatorConstant       = string(os.PathListSeparator)
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common     ApplicationCommonConfiguration      `mapstructure:"common"`
	Operations []ApplicationOperationConfiguration `mapstructure:"operations"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand             *cobra.Command
	configurationLoader     *utils.ConfigurationLoader
	loggerFactory           *utils.LoggerFactory
	logger                  *zap.Logger
	configuration           ApplicationConfiguration
	configurationMetadata   utils.LoadedConfiguration
	operationConfigurations operationConfigurations
	checkConfiguration      health.CheckConfiguration
	scanConfiguration       health.ScanConfiguration
	configurationFilePath   string
	logLevelFlagValue       string
	logFormatFlagValue      string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		resolveConfigurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
		checkConfiguration:  health.DefaultCheckConfiguration(),
		scanConfiguration:   health.DefaultScanConfiguration(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	logLevelChoice := flags.Choice{
		Default: string(defaultLogLevelConstant),
		Values:  []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)},
	}
	logFormatChoice := flags.Choice{
		Default: string(defaultLogFormatConstant),
		Values:  []string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
	}
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelChoice.Usage(logLevelFlagUsageConstant))
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatChoice.Usage(logFormatFlagUsageConstant))

	checkBuilder := health.CheckCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() health.CheckConfiguration {
			return application.checkConfiguration
		},
	}
	checkCommand, checkBuildError := checkBuilder.Build()
	if checkBuildError == nil {
		cobraCommand.AddCommand(checkCommand)
	}

	scanBuilder := health.ScanCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() health.ScanConfiguration {
			return application.scanConfiguration
		},
	}
	scanCommand, scanBuildError := scanBuilder.Build()
	if scanBuildError == nil {
		cobraCommand.AddCommand(scanCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// InitializeForCommand loads configuration and logging as if the named subcommand were about to run.
func (application *Application) InitializeForCommand(commandUse string) error {
	command, _, findError := application.rootCommand.Find([]string{commandUse})
	if findError != nil {
		return fmt.Errorf(commandLookupErrorTemplateConstant, commandUse, findError)
	}
	return application.initializeConfiguration(command)
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func resolveConfigurationSearchPaths() []string {
	overrideValue := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentNameConstant))
	if len(overrideValue) == 0 {
		return utils.DefaultConfigurationSearchPaths(applicationNameConstant)
	}

	searchPaths := make([]string, 0)
	for _, candidatePath := range strings.Split(overrideValue, configurationSearchPathSeparatorConstant) {
		trimmedPath := strings.TrimSpace(candidatePath)
		if len(trimmedPath) == 0 {
			continue
		}
		searchPaths = append(searchPaths, filepath.Clean(trimmedPath))
	}
	return searchPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(defaultLogLevelConstant),
		commonLogFormatConfigKeyConstant: string(defaultLogFormatConstant),
	}

	application.configuration = ApplicationConfiguration{}
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if operationsError := application.loadOperationConfigurations(); operationsError != nil {
		return fmt.Errorf(operationConfigurationErrorTemplateConstant, operationsError)
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(strings.TrimSpace(application.configuration.Common.LogLevel)),
		utils.LogFormat(strings.TrimSpace(application.configuration.Common.LogFormat)),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.Strings(configurationOperationsFieldConstant, application.operationConfigurations.names()),
	)

	return nil
}

func (application *Application) loadOperationConfigurations() error {
	operations, operationsError := newOperationConfigurations(application.configuration.Operations)
	if operationsError != nil {
		return operationsError
	}

	var checkConfiguration health.CheckConfiguration
	if decodeError := operations.decode(checkOperationNameConstant, &checkConfiguration); decodeError != nil {
		return decodeError
	}

	var scanConfiguration health.ScanConfiguration
	if decodeError := operations.decode(scanOperationNameConstant, &scanConfiguration); decodeError != nil {
		return decodeError
	}

	application.operationConfigurations = operations
	application.checkConfiguration = checkConfiguration.Sanitize()
	application.scanConfiguration = scanConfiguration.Sanitize()
	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

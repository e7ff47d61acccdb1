package health

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/execshell"
	"github.com/temirov/devhealth/internal/gitrepo"
	"github.com/temirov/devhealth/internal/gitscan"
	"github.com/temirov/devhealth/internal/report"
	"github.com/temirov/devhealth/internal/repos/dependencies"
	"github.com/temirov/devhealth/internal/repos/discovery"
	"github.com/temirov/devhealth/internal/ui"
	"github.com/temirov/devhealth/internal/utils"
	"github.com/temirov/devhealth/internal/utils/flags"
	pathutils "github.com/temirov/devhealth/internal/utils/path"
)

const (
	checkCommandShortDescriptionConstant = "Check git repository health"
	checkCommandLongDescriptionConstant  = "check finds every git repository beneath a directory and reports its branch, uncommitted changes, and unpushed commits."
	scanCommandShortDescriptionConstant  = "Run a comprehensive health scan"
	scanCommandLongDescriptionConstant   = "scan runs the selected git, dependency, and system inspections beneath a directory."
	pathFlagNameConstant                 = "path"
	pathFlagShorthandConstant            = "p"
	pathFlagDescriptionConstant          = "Directory to scan (defaults to the current directory)"
	formatFlagNameConstant               = "format"
	formatFlagDescriptionConstant        = "Report output format"
	gitFlagNameConstant                  = "git"
	gitFlagDescriptionConstant           = "Scan git repositories"
	depsFlagNameConstant                 = "deps"
	depsFlagDescriptionConstant          = "Scan dependency manifests"
	systemFlagNameConstant               = "system"
	systemFlagDescriptionConstant        = "Monitor system resources"
	formatParseErrorTemplateConstant     = "invalid --format value: %w"
	pathResolutionErrorTemplateConstant  = "invalid --path value: %w"
)

var healthHomeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// HumanReadableLoggingProvider reports whether console logging is active.
type HumanReadableLoggingProvider func() bool

// CheckConfigurationProvider returns the current check configuration.
type CheckConfigurationProvider func() CheckConfiguration

// ScanConfigurationProvider returns the current scan configuration.
type ScanConfigurationProvider func() ScanConfiguration

// CheckCommandBuilder assembles the check command.
type CheckCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ConfigurationProvider        CheckConfigurationProvider
	Locator                      discovery.RepositoryLocator
	GitExecutor                  gitrepo.GitExecutor
}

// Build constructs the cobra command for the git health check.
func (builder *CheckCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkCommandNameConstant,
		Short: checkCommandShortDescriptionConstant,
		Long:  checkCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	configuration := DefaultCheckConfiguration()
	command.Flags().StringP(pathFlagNameConstant, pathFlagShorthandConstant, "", pathFlagDescriptionConstant)
	command.Flags().String(formatFlagNameConstant, "", flags.Choice{Default: configuration.Format, Values: report.SupportedFormats()}.Usage(formatFlagDescriptionConstant))

	return command, nil
}

func (builder *CheckCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultCheckConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration = configuration.Sanitize()

	pathValue, formatValue, optionsError := parseCommonOptions(command, configuration.Path, configuration.Format)
	if optionsError != nil {
		return optionsError
	}
	runOptions, runOptionsError := buildRunOptions(checkCommandNameConstant, pathValue, formatValue)
	if runOptionsError != nil {
		return runOptionsError
	}
	runOptions.Sections = Sections{Git: true}

	logger := resolveLogger(builder.LoggerProvider)
	gitScanner, gitScannerError := buildGitScanner(logger, builder.HumanReadableLoggingProvider, builder.Locator, builder.GitExecutor)
	if gitScannerError != nil {
		return gitScannerError
	}

	service := NewService(ServiceDependencies{
		GitScanner:  gitScanner,
		Output:      utils.NewFlushingWriter(command.OutOrStdout()),
		ErrorOutput: utils.NewFlushingWriter(command.ErrOrStderr()),
		Logger:      logger,
	})
	return service.Run(command.Context(), runOptions)
}

// ScanCommandBuilder assembles the scan command.
type ScanCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	ConfigurationProvider        ScanConfigurationProvider
	Locator                      discovery.RepositoryLocator
	GitExecutor                  gitrepo.GitExecutor
	DependencyScanner            DependencyScanner
	SystemInspector              SystemInspector
}

// Build constructs the cobra command for the comprehensive scan.
func (builder *ScanCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   scanCommandNameConstant,
		Short: scanCommandShortDescriptionConstant,
		Long:  scanCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	configuration := DefaultScanConfiguration()
	command.Flags().StringP(pathFlagNameConstant, pathFlagShorthandConstant, "", pathFlagDescriptionConstant)
	command.Flags().String(formatFlagNameConstant, "", flags.Choice{Default: configuration.Format, Values: report.SupportedFormats()}.Usage(formatFlagDescriptionConstant))
	command.Flags().Bool(gitFlagNameConstant, false, gitFlagDescriptionConstant)
	command.Flags().Bool(depsFlagNameConstant, false, depsFlagDescriptionConstant)
	command.Flags().Bool(systemFlagNameConstant, false, systemFlagDescriptionConstant)

	return command, nil
}

func (builder *ScanCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultScanConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration = configuration.Sanitize()

	pathValue, formatValue, optionsError := parseCommonOptions(command, configuration.Path, configuration.Format)
	if optionsError != nil {
		return optionsError
	}
	runOptions, runOptionsError := buildRunOptions(scanCommandNameConstant, pathValue, formatValue)
	if runOptionsError != nil {
		return runOptionsError
	}

	sections := Sections{Git: configuration.Git, Dependencies: configuration.Deps, System: configuration.System}
	for _, toggle := range []struct {
		flagName string
		target   *bool
	}{
		{flagName: gitFlagNameConstant, target: &sections.Git},
		{flagName: depsFlagNameConstant, target: &sections.Dependencies},
		{flagName: systemFlagNameConstant, target: &sections.System},
	} {
		if !command.Flags().Changed(toggle.flagName) {
			continue
		}
		flagValue, flagError := command.Flags().GetBool(toggle.flagName)
		if flagError != nil {
			return flagError
		}
		*toggle.target = flagValue
	}
	runOptions.Sections = sections
	runOptions.SectionHeadings = true
	runOptions.ListedDependencyLimit = configuration.ListedDependencyLimit

	logger := resolveLogger(builder.LoggerProvider)
	serviceDependencies := ServiceDependencies{
		DependencyScanner: builder.DependencyScanner,
		SystemInspector:   builder.SystemInspector,
		Output:            utils.NewFlushingWriter(command.OutOrStdout()),
		ErrorOutput:       utils.NewFlushingWriter(command.ErrOrStderr()),
		Logger:            logger,
	}
	if sections.Git {
		gitScanner, gitScannerError := buildGitScanner(logger, builder.HumanReadableLoggingProvider, builder.Locator, builder.GitExecutor)
		if gitScannerError != nil {
			return gitScannerError
		}
		serviceDependencies.GitScanner = gitScanner
	}
	if serviceDependencies.DependencyScanner == nil {
		serviceDependencies.DependencyScanner = deps.NewService(deps.ServiceConfiguration{SkipDirectories: configuration.SkipDirectories, Logger: logger})
	}

	return NewService(serviceDependencies).Run(command.Context(), runOptions)
}

func parseCommonOptions(command *cobra.Command, configuredPath string, configuredFormat string) (string, string, error) {
	pathValue := configuredPath
	if command.Flags().Changed(pathFlagNameConstant) {
		flagValue, flagError := command.Flags().GetString(pathFlagNameConstant)
		if flagError != nil {
			return "", "", flagError
		}
		pathValue = flagValue
	}

	formatValue := configuredFormat
	if command.Flags().Changed(formatFlagNameConstant) {
		flagValue, flagError := command.Flags().GetString(formatFlagNameConstant)
		if flagError != nil {
			return "", "", flagError
		}
		formatValue = flagValue
	}
	return pathValue, formatValue, nil
}

func buildRunOptions(commandName string, pathValue string, formatValue string) (RunOptions, error) {
	format, formatError := report.ParseFormat(formatValue)
	if formatError != nil {
		return RunOptions{}, fmt.Errorf(formatParseErrorTemplateConstant, formatError)
	}

	trimmedPath := strings.TrimSpace(pathValue)
	if len(trimmedPath) == 0 {
		trimmedPath = defaultPathConstant
	}
	rootPath, resolveError := healthHomeDirectoryExpander.Resolve(trimmedPath)
	if resolveError != nil {
		return RunOptions{}, fmt.Errorf(pathResolutionErrorTemplateConstant, resolveError)
	}

	return RunOptions{
		CommandName: commandName,
		DisplayPath: healthHomeDirectoryExpander.Expand(trimmedPath),
		RootPath:    rootPath,
		Format:      format,
	}, nil
}

func buildGitScanner(logger *zap.Logger, humanReadableLogging HumanReadableLoggingProvider, locator discovery.RepositoryLocator, existingExecutor gitrepo.GitExecutor) (*gitscan.Service, error) {
	var observer execshell.CommandEventObserver
	if humanReadableLogging != nil && humanReadableLogging() {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(existingExecutor, logger, observer)
	if executorError != nil {
		return nil, executorError
	}
	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(nil, gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	return gitscan.NewService(gitscan.ServiceDependencies{
		Locator:   locator,
		Inspector: gitscan.NewInspector(repositoryManager, logger),
		Logger:    logger,
	}), nil
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

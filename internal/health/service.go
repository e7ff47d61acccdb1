package health

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/gitscan"
	"github.com/temirov/devhealth/internal/report"
	"github.com/temirov/devhealth/internal/system"
)

const (
	checkBannerTemplateConstant         = "🔍 Running health check on: %s\n"
	scanBannerTemplateConstant          = "🚀 Starting comprehensive scan on: %s\n"
	gitSectionHeadingConstant           = "\n📁 Scanning Git repositories...\n"
	dependencySectionHeadingConstant    = "\n📦 Checking dependencies...\n"
	systemSectionHeadingConstant        = "\n💻 Monitoring system resources...\n"
	noSectionsNoticeConstant            = "ℹ️  No scan options specified. Use --git, --deps, or --system flags to enable specific scans."
	dependencyScanErrorTemplateConstant = "Error scanning dependencies: %v\n"
	gitScanErrorTemplateConstant        = "git repository scan failed: %w"
	renderErrorTemplateConstant         = "unable to render report: %w"
	healthRunCompletedMessageConstant   = "health run completed"
	dependencyScanFailedMessageConstant = "dependency scan failed"
	logFieldCommandConstant             = "command"
	logFieldRootConstant                = "root"
	logFieldFormatConstant              = "format"
	logFieldRepositoryCountConstant     = "repositories"
	logFieldProjectCountConstant        = "projects"
	checkCommandNameConstant            = "check"
	scanCommandNameConstant             = "scan"
)

var (
	// ErrGitScannerNotConfigured indicates that the git section was requested without a git scanner.
	ErrGitScannerNotConfigured = errors.New("git scanner not configured")
	// ErrDependencyScannerNotConfigured indicates that the dependency section was requested without a dependency scanner.
	ErrDependencyScannerNotConfigured = errors.New("dependency scanner not configured")
)

// GitScanner scans repositories beneath a root.
type GitScanner interface {
	Scan(executionContext context.Context, root string, progress io.Writer) (gitscan.ScanReport, error)
}

// DependencyScanner scans dependency manifests beneath a root.
type DependencyScanner interface {
	Scan(root string) (deps.DependencyReport, error)
}

// SystemInspector reports system resource status.
type SystemInspector interface {
	Inspect() system.Status
}

// Sections selects the scans a run performs.
type Sections struct {
	Git          bool
	Dependencies bool
	System       bool
}

// Any reports whether at least one section is selected.
func (sections Sections) Any() bool {
	return sections.Git || sections.Dependencies || sections.System
}

// RunOptions describe one health run.
type RunOptions struct {
	CommandName           string
	DisplayPath           string
	RootPath              string
	Format                report.Format
	Sections              Sections
	SectionHeadings       bool
	ListedDependencyLimit int
}

// ServiceDependencies bundles the collaborators of Service.
type ServiceDependencies struct {
	GitScanner        GitScanner
	DependencyScanner DependencyScanner
	SystemInspector   SystemInspector
	Output            io.Writer
	ErrorOutput       io.Writer
	Logger            *zap.Logger
}

// Service runs the requested scans and renders their results.
type Service struct {
	gitScanner        GitScanner
	dependencyScanner DependencyScanner
	systemInspector   SystemInspector
	output            io.Writer
	errorOutput       io.Writer
	logger            *zap.Logger
}

// NewService constructs a Service. Nil writers discard output and a nil system inspector uses system.NewMonitor.
func NewService(serviceDependencies ServiceDependencies) *Service {
	service := &Service{
		gitScanner:        serviceDependencies.GitScanner,
		dependencyScanner: serviceDependencies.DependencyScanner,
		systemInspector:   serviceDependencies.SystemInspector,
		output:            serviceDependencies.Output,
		errorOutput:       serviceDependencies.ErrorOutput,
		logger:            serviceDependencies.Logger,
	}
	if service.systemInspector == nil {
		service.systemInspector = system.NewMonitor()
	}
	if service.output == nil {
		service.output = io.Discard
	}
	if service.errorOutput == nil {
		service.errorOutput = io.Discard
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	return service
}

// Run executes the selected sections in the order git, dependencies, system. Text output is
// streamed section by section; other formats are rendered once after every section completed.
// A dependency scan failure is reported on the error output and does not fail the run.
func (service *Service) Run(executionContext context.Context, options RunOptions) error {
	renderer, rendererError := report.NewRenderer(options.Format, report.RendererOptions{ListedDependencyLimit: options.ListedDependencyLimit})
	if rendererError != nil {
		return rendererError
	}
	streaming := options.Format == report.FormatText
	healthReport := report.HealthReport{RootPath: options.DisplayPath, Command: options.CommandName}

	if streaming {
		if writeError := service.writeText(bannerTemplate(options.CommandName), options.DisplayPath); writeError != nil {
			return writeError
		}
	}

	if !options.Sections.Any() {
		healthReport.Notice = noSectionsNoticeConstant
		return service.finish(renderer, options, healthReport)
	}

	if options.Sections.Git {
		if service.gitScanner == nil {
			return ErrGitScannerNotConfigured
		}
		if streaming && options.SectionHeadings {
			if writeError := service.writeText(gitSectionHeadingConstant); writeError != nil {
				return writeError
			}
		}
		var progress io.Writer
		if streaming {
			progress = service.output
		}
		scanReport, scanError := service.gitScanner.Scan(executionContext, options.RootPath, progress)
		if scanError != nil {
			return fmt.Errorf(gitScanErrorTemplateConstant, scanError)
		}
		healthReport.Git = &scanReport
		if streaming {
			if renderError := service.render(renderer, report.HealthReport{Git: &scanReport}); renderError != nil {
				return renderError
			}
		}
	}

	if options.Sections.Dependencies {
		if service.dependencyScanner == nil {
			return ErrDependencyScannerNotConfigured
		}
		if streaming && options.SectionHeadings {
			if writeError := service.writeText(dependencySectionHeadingConstant); writeError != nil {
				return writeError
			}
		}
		dependencyReport, scanError := service.dependencyScanner.Scan(options.RootPath)
		if scanError != nil {
			service.logger.Warn(dependencyScanFailedMessageConstant, zap.String(logFieldRootConstant, options.RootPath), zap.Error(scanError))
			if _, writeError := fmt.Fprintf(service.errorOutput, dependencyScanErrorTemplateConstant, scanError); writeError != nil {
				return writeError
			}
		} else {
			healthReport.Dependencies = &dependencyReport
			if streaming {
				if renderError := service.render(renderer, report.HealthReport{Dependencies: &dependencyReport}); renderError != nil {
					return renderError
				}
			}
		}
	}

	if options.Sections.System {
		if streaming && options.SectionHeadings {
			if writeError := service.writeText(systemSectionHeadingConstant); writeError != nil {
				return writeError
			}
		}
		systemStatus := service.systemInspector.Inspect()
		healthReport.System = &systemStatus
		if streaming {
			if renderError := service.render(renderer, report.HealthReport{System: &systemStatus}); renderError != nil {
				return renderError
			}
		}
	}

	return service.finish(renderer, options, healthReport)
}

func (service *Service) finish(renderer report.Renderer, options RunOptions, healthReport report.HealthReport) error {
	service.logger.Info(
		healthRunCompletedMessageConstant,
		zap.String(logFieldCommandConstant, options.CommandName),
		zap.String(logFieldRootConstant, options.RootPath),
		zap.String(logFieldFormatConstant, string(options.Format)),
		zap.Int(logFieldRepositoryCountConstant, repositoryCount(healthReport)),
		zap.Int(logFieldProjectCountConstant, projectCount(healthReport)),
	)

	if options.Format == report.FormatText {
		if len(healthReport.Notice) == 0 {
			return nil
		}
		return service.render(renderer, report.HealthReport{Notice: healthReport.Notice})
	}
	return service.render(renderer, healthReport)
}

func (service *Service) render(renderer report.Renderer, healthReport report.HealthReport) error {
	if renderError := renderer.Render(service.output, healthReport); renderError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, renderError)
	}
	return nil
}

func (service *Service) writeText(template string, arguments ...any) error {
	_, writeError := fmt.Fprintf(service.output, template, arguments...)
	return writeError
}

func bannerTemplate(commandName string) string {
	if commandName == checkCommandNameConstant {
		return checkBannerTemplateConstant
	}
	return scanBannerTemplateConstant
}

func repositoryCount(healthReport report.HealthReport) int {
	if healthReport.Git == nil {
		return 0
	}
	return len(healthReport.Git.Repositories)
}

func projectCount(healthReport report.HealthReport) int {
	if healthReport.Dependencies == nil {
		return 0
	}
	return len(healthReport.Dependencies.Projects)
}

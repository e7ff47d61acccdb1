package gitscan

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/devhealth/internal/repos/dependencies"
	"github.com/temirov/devhealth/internal/repos/discovery"
)

const (
	scanningProgressTemplateConstant      = "  Scanning: %s\n"
	locateErrorTemplateConstant           = "unable to locate repositories: %w"
	progressWriteErrorTemplateConstant    = "unable to report progress: %w"
	repositoriesLocatedLogMessageConstant = "repositories located"
	logFieldRootConstant                  = "root"
	logFieldCountConstant                 = "count"
)

// RepositoryInspector produces a record for one repository.
type RepositoryInspector interface {
	Inspect(executionContext context.Context, repositoryPath string) RepositoryRecord
}

// ServiceDependencies bundles the collaborators of Service. A nil Locator defaults to the filesystem locator.
type ServiceDependencies struct {
	Locator   discovery.RepositoryLocator
	Inspector RepositoryInspector
	Logger    *zap.Logger
}

// Service locates repositories and inspects them sequentially.
type Service struct {
	locator   discovery.RepositoryLocator
	inspector RepositoryInspector
	logger    *zap.Logger
}

// NewService constructs a Service from its dependencies.
func NewService(serviceDependencies ServiceDependencies) *Service {
	logger := serviceDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		locator:   dependencies.ResolveRepositoryLocator(serviceDependencies.Locator),
		inspector: serviceDependencies.Inspector,
		logger:    logger,
	}
}

// Scan inspects every repository under root in discovery order. When progress is non-nil a
// "Scanning: <path>" line is written before each inspection. Only a failure to read root,
// a failed progress write, or context cancellation is returned as an error.
func (service *Service) Scan(executionContext context.Context, root string, progress io.Writer) (ScanReport, error) {
	repositoryPaths, locateError := service.locator.LocateRepositories(root)
	if locateError != nil {
		return ScanReport{}, fmt.Errorf(locateErrorTemplateConstant, locateError)
	}
	service.logger.Debug(repositoriesLocatedLogMessageConstant, zap.String(logFieldRootConstant, root), zap.Int(logFieldCountConstant, len(repositoryPaths)))

	report := ScanReport{Repositories: make([]RepositoryRecord, 0, len(repositoryPaths))}
	for _, repositoryPath := range repositoryPaths {
		if contextError := executionContext.Err(); contextError != nil {
			return ScanReport{}, contextError
		}
		if progress != nil {
			if _, writeError := fmt.Fprintf(progress, scanningProgressTemplateConstant, repositoryPath); writeError != nil {
				return ScanReport{}, fmt.Errorf(progressWriteErrorTemplateConstant, writeError)
			}
		}
		report.Repositories = append(report.Repositories, service.inspector.Inspect(executionContext, repositoryPath))
	}
	return report, nil
}

package deps

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/temirov/devhealth/internal/filesystem"
	"github.com/temirov/devhealth/internal/repos/discovery"
)

const (
	walkRootErrorTemplateConstant     = "unable to read scan root %s: %w"
	projectErrorTemplateConstant      = "%s: %v"
	manifestParsedLogMessageConstant  = "dependency manifest parsed"
	manifestFailedLogMessageConstant  = "dependency manifest could not be parsed"
	projectsLocatedLogMessageConstant = "dependency projects located"
	logFieldManifestConstant          = "manifest"
	logFieldDependencyCountConstant   = "dependencies"
	logFieldRootConstant              = "root"
	logFieldProjectCountConstant      = "projects"
	gitDirectoryNameConstant          = ".git"
	nodeModulesDirectoryNameConstant  = "node_modules"
)

// DefaultSkipDirectories lists directory names the scanner never descends into.
func DefaultSkipDirectories() []string {
	return []string{gitDirectoryNameConstant, nodeModulesDirectoryNameConstant}
}

// ServiceConfiguration configures a Service. A nil SkipDirectories uses DefaultSkipDirectories
// and a nil FileSystem reads manifests from the operating system.
type ServiceConfiguration struct {
	SkipDirectories []string
	FileSystem      filesystem.FileSystem
	Logger          *zap.Logger
}

// Service walks a directory tree and reports the dependencies of every project it finds.
type Service struct {
	skipDirectories map[string]struct{}
	manifests       []ManifestDefinition
	fileSystem      filesystem.FileSystem
	logger          *zap.Logger
}

// NewService constructs a Service.
func NewService(configuration ServiceConfiguration) *Service {
	logger := configuration.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	skipDirectoryNames := configuration.SkipDirectories
	if skipDirectoryNames == nil {
		skipDirectoryNames = DefaultSkipDirectories()
	}
	skipDirectories := make(map[string]struct{}, len(skipDirectoryNames))
	for _, directoryName := range skipDirectoryNames {
		skipDirectories[directoryName] = struct{}{}
	}
	fileSystem := configuration.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &Service{skipDirectories: skipDirectories, manifests: ManifestDefinitions(), fileSystem: fileSystem, logger: logger}
}

// Scan reports one ProjectReport per directory holding at least one manifest, in walk order.
// Symbolic links are not followed and unreadable entries are skipped. Only a failure to read
// root itself is returned as an error; manifest parse failures are recorded on the project.
func (service *Service) Scan(root string) (DependencyReport, error) {
	walkRoot, rootError := discovery.ResolveWalkRoot(root)
	if rootError != nil {
		return DependencyReport{}, rootError
	}

	report := DependencyReport{Projects: make([]ProjectReport, 0)}
	visitedProjects := make(map[string]struct{})

	walkError := filepath.WalkDir(walkRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == walkRoot {
				return fmt.Errorf(walkRootErrorTemplateConstant, root, walkError)
			}
			return nil
		}

		if directoryEntry.IsDir() {
			if _, skipped := service.skipDirectories[directoryEntry.Name()]; skipped && path != walkRoot {
				return fs.SkipDir
			}
			return nil
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}
		if _, isManifest := DetectEcosystem(directoryEntry.Name()); !isManifest {
			return nil
		}

		projectDirectory := filepath.Dir(path)
		if _, visited := visitedProjects[projectDirectory]; visited {
			return nil
		}
		visitedProjects[projectDirectory] = struct{}{}
		report.Projects = append(report.Projects, service.scanProject(projectDirectory, discovery.PresentedPath(root, walkRoot, projectDirectory)))
		return nil
	})
	if walkError != nil {
		return DependencyReport{}, walkError
	}

	service.logger.Debug(projectsLocatedLogMessageConstant, zap.String(logFieldRootConstant, root), zap.Int(logFieldProjectCountConstant, len(report.Projects)))
	return report, nil
}

func (service *Service) scanProject(projectDirectory string, presentedDirectory string) ProjectReport {
	project := ProjectReport{
		ProjectPath:  presentedDirectory,
		Dependencies: make([]Dependency, 0),
		Ecosystems:   make([]Ecosystem, 0),
	}

	for _, manifest := range service.manifests {
		manifestInfo, statError := service.fileSystem.Lstat(filepath.Join(projectDirectory, manifest.FileName))
		if statError != nil || !manifestInfo.Mode().IsRegular() {
			continue
		}
		if !slices.Contains(project.Ecosystems, manifest.Ecosystem) {
			project.Ecosystems = append(project.Ecosystems, manifest.Ecosystem)
		}

		sourceFile := filepath.Join(presentedDirectory, manifest.FileName)
		dependencies, parseError := service.parseManifest(filepath.Join(projectDirectory, manifest.FileName), sourceFile, manifest)
		if parseError != nil {
			service.logger.Warn(manifestFailedLogMessageConstant, zap.String(logFieldManifestConstant, sourceFile), zap.Error(parseError))
			project.Errors = append(project.Errors, fmt.Sprintf(projectErrorTemplateConstant, manifest.FileName, parseError))
			continue
		}
		service.logger.Debug(manifestParsedLogMessageConstant, zap.String(logFieldManifestConstant, sourceFile), zap.Int(logFieldDependencyCountConstant, len(dependencies)))
		project.Dependencies = append(project.Dependencies, dependencies...)
	}
	return project
}

func (service *Service) parseManifest(manifestPath string, sourceFile string, manifest ManifestDefinition) ([]Dependency, error) {
	contents, readError := service.fileSystem.ReadFile(manifestPath)
	if readError != nil {
		return nil, readError
	}
	return manifest.Parse(sourceFile, contents)
}

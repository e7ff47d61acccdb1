package deps_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/filesystem"
)

type unreadableManifestFileSystem struct {
	filesystem.OSFileSystem
	unreadableName string
}

func (fileSystem unreadableManifestFileSystem) ReadFile(path string) ([]byte, error) {
	if filepath.Base(path) == fileSystem.unreadableName {
		return nil, fs.ErrPermission
	}
	return fileSystem.OSFileSystem.ReadFile(path)
}

func writeManifest(testInstance *testing.T, directory string, fileName string, contents string) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(directory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(directory, fileName), []byte(contents), 0o644))
}

func projectPaths(report deps.DependencyReport) []string {
	paths := make([]string, 0, len(report.Projects))
	for _, project := range report.Projects {
		paths = append(paths, project.ProjectPath)
	}
	return paths
}

func TestServiceScanFindsProjects(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	polyglotDirectory := filepath.Join(rootDirectory, "polyglot")
	serviceDirectory := filepath.Join(rootDirectory, "services", "api")

	writeManifest(testInstance, polyglotDirectory, deps.GoModuleManifestFileName, testGoModuleConstant)
	writeManifest(testInstance, polyglotDirectory, deps.PackageJSONManifestFileName, testPackageJSONConstant)
	writeManifest(testInstance, serviceDirectory, deps.CargoManifestFileName, testCargoManifestConstant)
	writeManifest(testInstance, filepath.Join(polyglotDirectory, "node_modules", "react"), deps.PackageJSONManifestFileName, testPackageJSONConstant)
	writeManifest(testInstance, filepath.Join(rootDirectory, ".git"), deps.GoModuleManifestFileName, testGoModuleConstant)

	report, scanError := deps.NewService(deps.ServiceConfiguration{}).Scan(rootDirectory)
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []string{polyglotDirectory, serviceDirectory}, projectPaths(report))

	polyglotProject := report.Projects[0]
	require.Equal(testInstance, []deps.Ecosystem{deps.EcosystemNodeJS, deps.EcosystemGo}, polyglotProject.Ecosystems)
	require.Len(testInstance, polyglotProject.Dependencies, 8)
	require.Empty(testInstance, polyglotProject.Errors)
	require.Equal(testInstance, filepath.Join(polyglotDirectory, deps.PackageJSONManifestFileName), polyglotProject.Dependencies[0].SourceFile)
	require.Len(testInstance, polyglotProject.DependenciesOf(deps.EcosystemGo), 3)

	summary := report.Summary()
	require.Equal(testInstance, 2, summary.TotalProjects)
	require.Equal(testInstance, 13, summary.TotalDependencies)
	require.Equal(testInstance, []deps.EcosystemCount{
		{Ecosystem: deps.EcosystemNodeJS, Dependencies: 5},
		{Ecosystem: deps.EcosystemGo, Dependencies: 3},
		{Ecosystem: deps.EcosystemRust, Dependencies: 5},
	}, summary.Ecosystems)
}

func TestServiceScanRecordsParseErrors(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	writeManifest(testInstance, rootDirectory, deps.CargoManifestFileName, "[dependencies\n")
	writeManifest(testInstance, rootDirectory, deps.RequirementsManifestFileName, "requests==2.31.0\n")

	observerCore, observedLogs := observer.New(zapcore.WarnLevel)
	service := deps.NewService(deps.ServiceConfiguration{Logger: zap.New(observerCore)})

	report, scanError := service.Scan(rootDirectory)
	require.NoError(testInstance, scanError)
	require.Len(testInstance, report.Projects, 1)

	project := report.Projects[0]
	require.Equal(testInstance, []deps.Ecosystem{deps.EcosystemRust, deps.EcosystemPython}, project.Ecosystems)
	require.Len(testInstance, project.Errors, 1)
	require.Contains(testInstance, project.Errors[0], "Cargo.toml: invalid Cargo manifest")
	require.Len(testInstance, project.Dependencies, 1)
	require.Equal(testInstance, "requests", project.Dependencies[0].Name)
	require.Equal(testInstance, 1, observedLogs.Len())
}

func TestServiceScanRecordsReadErrors(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	writeManifest(testInstance, rootDirectory, deps.GoModuleManifestFileName, testGoModuleConstant)
	writeManifest(testInstance, rootDirectory, deps.PipfileManifestFileName, "[packages]\nflask = \"*\"\n")

	service := deps.NewService(deps.ServiceConfiguration{
		FileSystem: unreadableManifestFileSystem{unreadableName: deps.GoModuleManifestFileName},
	})

	report, scanError := service.Scan(rootDirectory)
	require.NoError(testInstance, scanError)
	require.Len(testInstance, report.Projects, 1)

	project := report.Projects[0]
	require.Equal(testInstance, []deps.Ecosystem{deps.EcosystemPython, deps.EcosystemGo}, project.Ecosystems)
	require.Equal(testInstance, []string{"go.mod: " + fs.ErrPermission.Error()}, project.Errors)
	require.Len(testInstance, project.Dependencies, 1)
	require.Equal(testInstance, "flask", project.Dependencies[0].Name)
}

func TestServiceScanSkipsConfiguredDirectories(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	writeManifest(testInstance, filepath.Join(rootDirectory, "vendor", "lib"), deps.GoModuleManifestFileName, testGoModuleConstant)
	writeManifest(testInstance, filepath.Join(rootDirectory, "node_modules", "pkg"), deps.PackageJSONManifestFileName, testPackageJSONConstant)

	report, scanError := deps.NewService(deps.ServiceConfiguration{SkipDirectories: []string{"vendor"}}).Scan(rootDirectory)
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []string{filepath.Join(rootDirectory, "node_modules", "pkg")}, projectPaths(report))
}

func TestServiceScanDoesNotFollowSymbolicLinks(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	outsideDirectory := testInstance.TempDir()
	writeManifest(testInstance, outsideDirectory, deps.GoModuleManifestFileName, testGoModuleConstant)
	require.NoError(testInstance, os.Symlink(outsideDirectory, filepath.Join(rootDirectory, "linked")))
	require.NoError(testInstance, os.Symlink(filepath.Join(outsideDirectory, deps.GoModuleManifestFileName), filepath.Join(rootDirectory, deps.GoModuleManifestFileName)))

	report, scanError := deps.NewService(deps.ServiceConfiguration{}).Scan(rootDirectory)
	require.NoError(testInstance, scanError)
	require.Empty(testInstance, report.Projects)
}

func TestServiceScanRootErrors(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	regularFile := filepath.Join(rootDirectory, "file.txt")
	require.NoError(testInstance, os.WriteFile(regularFile, []byte("content"), 0o644))

	testCases := []struct {
		name string
		root string
	}{
		{name: "missing_root", root: filepath.Join(rootDirectory, "missing")},
		{name: "file_root", root: regularFile},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, scanError := deps.NewService(deps.ServiceConfiguration{}).Scan(testCase.root)
			require.Error(testInstance, scanError)
		})
	}
}

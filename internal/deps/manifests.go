package deps

import (
	"cmp"
	"maps"
	"slices"
)

// Manifest file names recognised by the scanner.
const (
	CargoManifestFileName        = "Cargo.toml"
	PackageJSONManifestFileName  = "package.json"
	RequirementsManifestFileName = "requirements.txt"
	PyprojectManifestFileName    = "pyproject.toml"
	PipfileManifestFileName      = "Pipfile"
	GoModuleManifestFileName     = "go.mod"
)

const (
	anyVersionConstant      = "*"
	versionTableKeyConstant = "version"
)

// ManifestParser extracts dependencies from manifest contents. sourceFile is recorded on every dependency.
type ManifestParser func(sourceFile string, contents []byte) ([]Dependency, error)

// ManifestDefinition binds a manifest file name to its ecosystem and parser.
type ManifestDefinition struct {
	FileName  string
	Ecosystem Ecosystem
	Parse     ManifestParser
}

// ManifestDefinitions returns the supported manifests in the order a project directory is parsed.
func ManifestDefinitions() []ManifestDefinition {
	return []ManifestDefinition{
		{FileName: CargoManifestFileName, Ecosystem: EcosystemRust, Parse: ParseCargoManifest},
		{FileName: PackageJSONManifestFileName, Ecosystem: EcosystemNodeJS, Parse: ParsePackageJSON},
		{FileName: RequirementsManifestFileName, Ecosystem: EcosystemPython, Parse: ParseRequirements},
		{FileName: PyprojectManifestFileName, Ecosystem: EcosystemPython, Parse: ParsePyproject},
		{FileName: PipfileManifestFileName, Ecosystem: EcosystemPython, Parse: ParsePipfile},
		{FileName: GoModuleManifestFileName, Ecosystem: EcosystemGo, Parse: ParseGoModule},
	}
}

// DetectEcosystem reports the ecosystem of a manifest file name.
func DetectEcosystem(fileName string) (Ecosystem, bool) {
	for _, definition := range ManifestDefinitions() {
		if definition.FileName == fileName {
			return definition.Ecosystem, true
		}
	}
	return "", false
}

// tableVersion reads a version from a string value or an inline table with a version key.
func tableVersion(value any) string {
	switch typedValue := value.(type) {
	case string:
		return typedValue
	case map[string]any:
		if version, isString := typedValue[versionTableKeyConstant].(string); isString {
			return version
		}
	}
	return anyVersionConstant
}

// tableDependencies converts a name to version-value table into dependencies sorted by name.
func tableDependencies(table map[string]any, kind DependencyKind, ecosystem Ecosystem, sourceFile string) []Dependency {
	dependencies := make([]Dependency, 0, len(table))
	for _, name := range slices.Sorted(maps.Keys(table)) {
		dependencies = append(dependencies, Dependency{
			Name:       name,
			Version:    tableVersion(table[name]),
			Kind:       kind,
			Ecosystem:  ecosystem,
			SourceFile: sourceFile,
		})
	}
	return dependencies
}

func sortByName(dependencies []Dependency) []Dependency {
	slices.SortStableFunc(dependencies, func(left Dependency, right Dependency) int {
		return cmp.Compare(left.Name, right.Name)
	})
	return dependencies
}

package deps

import (
	"bufio"
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	pyprojectDecodeErrorTemplateConstant     = "invalid pyproject.toml: %w"
	pipfileDecodeErrorTemplateConstant       = "invalid Pipfile: %w"
	requirementsReadErrorTemplateConstant    = "unable to read requirements: %w"
	requirementCommentPrefixConstant         = "#"
	requirementOptionPrefixConstant          = "-"
	requirementMarkerSeparatorConstant       = ";"
	requirementNameTerminatorsConstant       = "=<>!~[@ ;,("
	requirementOperatorCharactersConstant    = "=<>!~ "
	requirementExtrasOpeningConstant         = "["
	requirementExtrasClosingConstant         = "]"
	requirementDirectReferencePrefixConstant = "@"
	poetryPythonDependencyNameConstant       = "python"
)

type pyprojectManifest struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies    map[string]any `toml:"dependencies"`
			DevDependencies map[string]any `toml:"dev-dependencies"`
			Group           map[string]struct {
				Dependencies map[string]any `toml:"dependencies"`
			} `toml:"group"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

type pipfileManifest struct {
	Packages    map[string]any `toml:"packages"`
	DevPackages map[string]any `toml:"dev-packages"`
}

// ParseRequirements reads a pip requirements file. Blank lines, comments and pip options are skipped.
func ParseRequirements(sourceFile string, contents []byte) ([]Dependency, error) {
	dependencies := make([]Dependency, 0)
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if commentIndex := strings.Index(line, requirementCommentPrefixConstant); commentIndex >= 0 {
			line = strings.TrimSpace(line[:commentIndex])
		}
		if len(line) == 0 || strings.HasPrefix(line, requirementOptionPrefixConstant) {
			continue
		}
		name, version, parsed := ParseRequirementSpecifier(line)
		if !parsed {
			continue
		}
		dependencies = append(dependencies, Dependency{
			Name:       name,
			Version:    version,
			Kind:       DependencyKindRuntime,
			Ecosystem:  EcosystemPython,
			SourceFile: sourceFile,
		})
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(requirementsReadErrorTemplateConstant, scanError)
	}
	return sortByName(dependencies), nil
}

// ParseRequirementSpecifier splits a PEP 508 style requirement such as "requests[socks]>=2.25; python_version>'3'"
// into its name and version specifier. Leading comparison operators are removed from the version, which
// is "*" when the requirement carries none.
func ParseRequirementSpecifier(requirement string) (string, string, bool) {
	requirement = strings.TrimSpace(requirement)
	if markerIndex := strings.Index(requirement, requirementMarkerSeparatorConstant); markerIndex >= 0 {
		requirement = strings.TrimSpace(requirement[:markerIndex])
	}

	nameEnd := strings.IndexAny(requirement, requirementNameTerminatorsConstant)
	if nameEnd < 0 {
		nameEnd = len(requirement)
	}
	name := strings.TrimSpace(requirement[:nameEnd])
	if len(name) == 0 {
		return "", "", false
	}

	remainder := strings.TrimSpace(requirement[nameEnd:])
	if strings.HasPrefix(remainder, requirementExtrasOpeningConstant) {
		if closingIndex := strings.Index(remainder, requirementExtrasClosingConstant); closingIndex >= 0 {
			remainder = strings.TrimSpace(remainder[closingIndex+1:])
		}
	}
	remainder = strings.TrimSpace(strings.Trim(remainder, "()"))

	version := strings.TrimLeft(remainder, requirementOperatorCharactersConstant)
	if len(version) == 0 || strings.HasPrefix(remainder, requirementDirectReferencePrefixConstant) {
		version = anyVersionConstant
	}
	return name, version, true
}

// ParsePyproject reads PEP 621 project dependencies and Poetry dependency tables from a pyproject.toml.
func ParsePyproject(sourceFile string, contents []byte) ([]Dependency, error) {
	var manifest pyprojectManifest
	if decodeError := toml.Unmarshal(contents, &manifest); decodeError != nil {
		return nil, fmt.Errorf(pyprojectDecodeErrorTemplateConstant, decodeError)
	}

	dependencies := specifierDependencies(manifest.Project.Dependencies, DependencyKindRuntime, sourceFile)
	for _, group := range slices.Sorted(maps.Keys(manifest.Project.OptionalDependencies)) {
		dependencies = append(dependencies, specifierDependencies(manifest.Project.OptionalDependencies[group], DependencyKindOptional, sourceFile)...)
	}

	poetry := manifest.Tool.Poetry
	poetryRuntime := maps.Clone(poetry.Dependencies)
	delete(poetryRuntime, poetryPythonDependencyNameConstant)
	dependencies = append(dependencies, tableDependencies(poetryRuntime, DependencyKindRuntime, EcosystemPython, sourceFile)...)
	dependencies = append(dependencies, tableDependencies(poetry.DevDependencies, DependencyKindDevelopment, EcosystemPython, sourceFile)...)
	for _, group := range slices.Sorted(maps.Keys(poetry.Group)) {
		dependencies = append(dependencies, tableDependencies(poetry.Group[group].Dependencies, DependencyKindDevelopment, EcosystemPython, sourceFile)...)
	}
	return dependencies, nil
}

// ParsePipfile reads [packages] and [dev-packages] of a Pipfile.
func ParsePipfile(sourceFile string, contents []byte) ([]Dependency, error) {
	var manifest pipfileManifest
	if decodeError := toml.Unmarshal(contents, &manifest); decodeError != nil {
		return nil, fmt.Errorf(pipfileDecodeErrorTemplateConstant, decodeError)
	}

	dependencies := tableDependencies(manifest.Packages, DependencyKindRuntime, EcosystemPython, sourceFile)
	dependencies = append(dependencies, tableDependencies(manifest.DevPackages, DependencyKindDevelopment, EcosystemPython, sourceFile)...)
	return dependencies, nil
}

func specifierDependencies(specifiers []string, kind DependencyKind, sourceFile string) []Dependency {
	dependencies := make([]Dependency, 0, len(specifiers))
	for _, specifier := range specifiers {
		name, version, parsed := ParseRequirementSpecifier(specifier)
		if !parsed {
			continue
		}
		dependencies = append(dependencies, Dependency{
			Name:       name,
			Version:    version,
			Kind:       kind,
			Ecosystem:  EcosystemPython,
			SourceFile: sourceFile,
		})
	}
	return sortByName(dependencies)
}

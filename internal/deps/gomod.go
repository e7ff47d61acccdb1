package deps

import (
	"fmt"

	"golang.org/x/mod/modfile"
)

const goModuleDecodeErrorTemplateConstant = "invalid go.mod: %w"

// ParseGoModule reads every require directive of a go.mod. Indirect requirements are
// reported as development dependencies.
func ParseGoModule(sourceFile string, contents []byte) ([]Dependency, error) {
	moduleFile, parseError := modfile.Parse(sourceFile, contents, nil)
	if parseError != nil {
		return nil, fmt.Errorf(goModuleDecodeErrorTemplateConstant, parseError)
	}

	dependencies := make([]Dependency, 0, len(moduleFile.Require))
	for _, requirement := range moduleFile.Require {
		kind := DependencyKindRuntime
		if requirement.Indirect {
			kind = DependencyKindDevelopment
		}
		dependencies = append(dependencies, Dependency{
			Name:       requirement.Mod.Path,
			Version:    requirement.Mod.Version,
			Kind:       kind,
			Ecosystem:  EcosystemGo,
			SourceFile: sourceFile,
		})
	}
	return sortByName(dependencies), nil
}

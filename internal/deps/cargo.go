package deps

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

const cargoDecodeErrorTemplateConstant = "invalid Cargo manifest: %w"

type cargoManifest struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// ParseCargoManifest reads [dependencies], [dev-dependencies] and [build-dependencies] of a Cargo.toml.
func ParseCargoManifest(sourceFile string, contents []byte) ([]Dependency, error) {
	var manifest cargoManifest
	if decodeError := toml.Unmarshal(contents, &manifest); decodeError != nil {
		return nil, fmt.Errorf(cargoDecodeErrorTemplateConstant, decodeError)
	}

	dependencies := tableDependencies(manifest.Dependencies, DependencyKindRuntime, EcosystemRust, sourceFile)
	dependencies = append(dependencies, tableDependencies(manifest.DevDependencies, DependencyKindDevelopment, EcosystemRust, sourceFile)...)
	dependencies = append(dependencies, tableDependencies(manifest.BuildDependencies, DependencyKindBuild, EcosystemRust, sourceFile)...)
	return dependencies, nil
}

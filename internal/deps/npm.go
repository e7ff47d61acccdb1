package deps

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

const packageJSONDecodeErrorTemplateConstant = "invalid package.json: %w"

type packageJSONManifest struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// ParsePackageJSON reads the dependency sections of a package.json. Peer and optional
// dependencies are both reported as optional.
func ParsePackageJSON(sourceFile string, contents []byte) ([]Dependency, error) {
	var manifest packageJSONManifest
	if decodeError := json.Unmarshal(contents, &manifest); decodeError != nil {
		return nil, fmt.Errorf(packageJSONDecodeErrorTemplateConstant, decodeError)
	}

	sections := []struct {
		entries map[string]string
		kind    DependencyKind
	}{
		{entries: manifest.Dependencies, kind: DependencyKindRuntime},
		{entries: manifest.DevDependencies, kind: DependencyKindDevelopment},
		{entries: manifest.PeerDependencies, kind: DependencyKindOptional},
		{entries: manifest.OptionalDependencies, kind: DependencyKindOptional},
	}

	dependencies := make([]Dependency, 0)
	for _, section := range sections {
		for _, name := range slices.Sorted(maps.Keys(section.entries)) {
			dependencies = append(dependencies, Dependency{
				Name:       name,
				Version:    section.entries[name],
				Kind:       section.kind,
				Ecosystem:  EcosystemNodeJS,
				SourceFile: sourceFile,
			})
		}
	}
	return dependencies, nil
}

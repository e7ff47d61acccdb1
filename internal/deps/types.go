package deps

// DependencyKind classifies how a project uses a dependency.
type DependencyKind string

// Supported dependency kinds.
const (
	DependencyKindRuntime     DependencyKind = DependencyKind("runtime")
	DependencyKindDevelopment DependencyKind = DependencyKind("development")
	DependencyKindBuild       DependencyKind = DependencyKind("build")
	DependencyKindOptional    DependencyKind = DependencyKind("optional")
)

// Badge returns the short label shown next to a dependency in text output.
func (kind DependencyKind) Badge() string {
	switch kind {
	case DependencyKindDevelopment:
		return "dev"
	case DependencyKindBuild:
		return "build"
	case DependencyKindOptional:
		return "opt"
	default:
		return "prod"
	}
}

// Ecosystem identifies a package ecosystem.
type Ecosystem string

// Supported ecosystems.
const (
	EcosystemRust   Ecosystem = Ecosystem("rust")
	EcosystemNodeJS Ecosystem = Ecosystem("nodejs")
	EcosystemPython Ecosystem = Ecosystem("python")
	EcosystemGo     Ecosystem = Ecosystem("go")
)

// DisplayName returns the human-readable ecosystem name.
func (ecosystem Ecosystem) DisplayName() string {
	switch ecosystem {
	case EcosystemRust:
		return "Rust"
	case EcosystemNodeJS:
		return "Node.js"
	case EcosystemPython:
		return "Python"
	case EcosystemGo:
		return "Go"
	default:
		return string(ecosystem)
	}
}

// Icon returns the glyph used for the ecosystem in text output.
func (ecosystem Ecosystem) Icon() string {
	switch ecosystem {
	case EcosystemRust:
		return "🦀"
	case EcosystemNodeJS:
		return "📦"
	case EcosystemPython:
		return "🐍"
	case EcosystemGo:
		return "🐹"
	default:
		return "📄"
	}
}

// Dependency is one declared dependency of a project.
type Dependency struct {
	Name       string         `json:"name" yaml:"name"`
	Version    string         `json:"version" yaml:"version"`
	Kind       DependencyKind `json:"kind" yaml:"kind"`
	Ecosystem  Ecosystem      `json:"ecosystem" yaml:"ecosystem"`
	SourceFile string         `json:"source_file" yaml:"source_file"`
}

// ProjectReport collects the dependencies of every manifest found in one directory.
type ProjectReport struct {
	ProjectPath  string       `json:"project_path" yaml:"project_path"`
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies"`
	Ecosystems   []Ecosystem  `json:"ecosystems" yaml:"ecosystems"`
	Errors       []string     `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// DependenciesOf returns the project's dependencies that belong to ecosystem, in declaration order.
func (project ProjectReport) DependenciesOf(ecosystem Ecosystem) []Dependency {
	filtered := make([]Dependency, 0, len(project.Dependencies))
	for _, dependency := range project.Dependencies {
		if dependency.Ecosystem == ecosystem {
			filtered = append(filtered, dependency)
		}
	}
	return filtered
}

// DependencyReport lists project reports in walk order.
type DependencyReport struct {
	Projects []ProjectReport `json:"projects" yaml:"projects"`
}

// EcosystemCount is the number of dependencies declared for one ecosystem across a report.
type EcosystemCount struct {
	Ecosystem    Ecosystem `json:"ecosystem" yaml:"ecosystem"`
	Dependencies int       `json:"dependencies" yaml:"dependencies"`
}

// Summary aggregates a dependency report.
type Summary struct {
	TotalProjects     int              `json:"total_projects" yaml:"total_projects"`
	TotalDependencies int              `json:"total_dependencies" yaml:"total_dependencies"`
	Errors            int              `json:"errors" yaml:"errors"`
	Ecosystems        []EcosystemCount `json:"ecosystems" yaml:"ecosystems"`
}

// Summary aggregates the projects of the report. Ecosystems appear in the order they were first seen.
func (report DependencyReport) Summary() Summary {
	summary := Summary{TotalProjects: len(report.Projects), Ecosystems: make([]EcosystemCount, 0)}
	ecosystemIndex := make(map[Ecosystem]int)

	for _, project := range report.Projects {
		summary.TotalDependencies += len(project.Dependencies)
		summary.Errors += len(project.Errors)
		for _, ecosystem := range project.Ecosystems {
			if _, known := ecosystemIndex[ecosystem]; !known {
				ecosystemIndex[ecosystem] = len(summary.Ecosystems)
				summary.Ecosystems = append(summary.Ecosystems, EcosystemCount{Ecosystem: ecosystem})
			}
		}
		for _, dependency := range project.Dependencies {
			index, known := ecosystemIndex[dependency.Ecosystem]
			if !known {
				index = len(summary.Ecosystems)
				ecosystemIndex[dependency.Ecosystem] = index
				summary.Ecosystems = append(summary.Ecosystems, EcosystemCount{Ecosystem: dependency.Ecosystem})
			}
			summary.Ecosystems[index].Dependencies++
		}
	}
	return summary
}

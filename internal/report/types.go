package report

import (
	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/gitscan"
	"github.com/temirov/devhealth/internal/system"
)

// HealthReport combines the sections produced by one command. Sections the command did not run are nil.
type HealthReport struct {
	RootPath     string
	Command      string
	Git          *gitscan.ScanReport
	Dependencies *deps.DependencyReport
	System       *system.Status
	Notice       string
}

type reportDocument struct {
	RootPath     string              `json:"root_path" yaml:"root_path"`
	Command      string              `json:"command" yaml:"command"`
	Git          *gitDocument        `json:"git,omitempty" yaml:"git,omitempty"`
	Dependencies *dependencyDocument `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	System       *system.Status      `json:"system,omitempty" yaml:"system,omitempty"`
	Notice       string              `json:"notice,omitempty" yaml:"notice,omitempty"`
}

type gitDocument struct {
	Summary      gitscan.Summary            `json:"summary" yaml:"summary"`
	Repositories []gitscan.RepositoryRecord `json:"repositories" yaml:"repositories"`
}

type dependencyDocument struct {
	Summary  deps.Summary         `json:"summary" yaml:"summary"`
	Projects []deps.ProjectReport `json:"projects" yaml:"projects"`
}

func newReportDocument(healthReport HealthReport) reportDocument {
	document := reportDocument{
		RootPath: healthReport.RootPath,
		Command:  healthReport.Command,
		System:   healthReport.System,
		Notice:   healthReport.Notice,
	}
	if healthReport.Git != nil {
		repositories := healthReport.Git.Repositories
		if repositories == nil {
			repositories = []gitscan.RepositoryRecord{}
		}
		document.Git = &gitDocument{Summary: healthReport.Git.Summary(), Repositories: repositories}
	}
	if healthReport.Dependencies != nil {
		projects := healthReport.Dependencies.Projects
		if projects == nil {
			projects = []deps.ProjectReport{}
		}
		document.Dependencies = &dependencyDocument{Summary: healthReport.Dependencies.Summary(), Projects: projects}
	}
	return document
}

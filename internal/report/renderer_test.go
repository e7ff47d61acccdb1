package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/gitscan"
	"github.com/temirov/devhealth/internal/report"
	"github.com/temirov/devhealth/internal/system"
)

const (
	testRootPathConstant = "/workspace"
)

func sampleHealthReport() report.HealthReport {
	return report.HealthReport{
		RootPath: testRootPathConstant,
		Command:  "scan",
		Git: &gitscan.ScanReport{Repositories: []gitscan.RepositoryRecord{
			{Path: "/workspace/api", Status: gitscan.CleanStatus(), Branch: "main", HasUnpushedCommits: true},
			{Path: "/workspace/web", Status: gitscan.DirtyStatus(), Branch: "develop", HasUncommittedChanges: true},
		}},
		Dependencies: &deps.DependencyReport{Projects: []deps.ProjectReport{{
			ProjectPath: "/workspace/api",
			Ecosystems:  []deps.Ecosystem{deps.EcosystemGo},
			Dependencies: []deps.Dependency{
				{Name: "go.uber.org/zap", Version: "v1.27.0", Kind: deps.DependencyKindRuntime, Ecosystem: deps.EcosystemGo, SourceFile: "/workspace/api/go.mod"},
			},
		}}},
		System: &system.Status{Message: "System monitoring not implemented yet!"},
	}
}

func renderReport(testInstance *testing.T, format report.Format, healthReport report.HealthReport) string {
	testInstance.Helper()
	renderer, rendererError := report.NewRenderer(format, report.RendererOptions{})
	require.NoError(testInstance, rendererError)
	outputBuffer := &bytes.Buffer{}
	require.NoError(testInstance, renderer.Render(outputBuffer, healthReport))
	return outputBuffer.String()
}

func TestJSONRenderer(testInstance *testing.T) {
	output := renderReport(testInstance, report.FormatJSON, sampleHealthReport())

	var decoded map[string]any
	require.NoError(testInstance, json.Unmarshal([]byte(output), &decoded))
	require.Equal(testInstance, testRootPathConstant, decoded["root_path"])
	require.Equal(testInstance, "scan", decoded["command"])
	require.NotContains(testInstance, decoded, "notice")

	gitSection := decoded["git"].(map[string]any)
	summary := gitSection["summary"].(map[string]any)
	require.EqualValues(testInstance, 2, summary["total"])
	require.EqualValues(testInstance, 1, summary["dirty"])
	require.EqualValues(testInstance, 1, summary["unpushed"])
	require.Len(testInstance, gitSection["repositories"], 2)

	dependencySection := decoded["dependencies"].(map[string]any)
	require.EqualValues(testInstance, 1, dependencySection["summary"].(map[string]any)["total_dependencies"])
	require.Contains(testInstance, output, "\n  \"root_path\"")
}

func TestJSONRendererOmitsSkippedSections(testInstance *testing.T) {
	output := renderReport(testInstance, report.FormatJSON, report.HealthReport{
		RootPath: testRootPathConstant,
		Command:  "check",
		Git:      &gitscan.ScanReport{},
	})

	var decoded map[string]any
	require.NoError(testInstance, json.Unmarshal([]byte(output), &decoded))
	require.NotContains(testInstance, decoded, "dependencies")
	require.NotContains(testInstance, decoded, "system")
	require.Equal(testInstance, []any{}, decoded["git"].(map[string]any)["repositories"])
}

func TestYAMLRenderer(testInstance *testing.T) {
	output := renderReport(testInstance, report.FormatYAML, sampleHealthReport())

	var decoded struct {
		RootPath string `yaml:"root_path"`
		Git      struct {
			Repositories []struct {
				Path   string `yaml:"path"`
				Branch string `yaml:"branch"`
				Status struct {
					Kind string `yaml:"kind"`
				} `yaml:"status"`
			} `yaml:"repositories"`
		} `yaml:"git"`
		System struct {
			Implemented bool   `yaml:"implemented"`
			Message     string `yaml:"message"`
		} `yaml:"system"`
	}
	require.NoError(testInstance, yaml.Unmarshal([]byte(output), &decoded))
	require.Equal(testInstance, testRootPathConstant, decoded.RootPath)
	require.Len(testInstance, decoded.Git.Repositories, 2)
	require.Equal(testInstance, "develop", decoded.Git.Repositories[1].Branch)
	require.Equal(testInstance, "dirty", decoded.Git.Repositories[1].Status.Kind)
	require.False(testInstance, decoded.System.Implemented)
	require.Equal(testInstance, "System monitoring not implemented yet!", decoded.System.Message)
}

func TestMarkdownRenderer(testInstance *testing.T) {
	output := renderReport(testInstance, report.FormatMarkdown, sampleHealthReport())

	require.Contains(testInstance, output, "# devhealth Report")
	require.Contains(testInstance, output, "## Git Repositories")
	require.Contains(testInstance, output, "```mermaid")
	require.Contains(testInstance, output, "`main`")
	require.Contains(testInstance, output, "1 repositories have uncommitted changes.")
	require.Contains(testInstance, output, "## Dependencies")
	require.Contains(testInstance, output, "go.uber.org/zap")
	require.Contains(testInstance, output, "## System")
	require.Contains(testInstance, output, "System monitoring not implemented yet!")
}

func TestMarkdownRendererEmptySections(testInstance *testing.T) {
	output := renderReport(testInstance, report.FormatMarkdown, report.HealthReport{
		RootPath:     testRootPathConstant,
		Command:      "scan",
		Git:          &gitscan.ScanReport{},
		Dependencies: &deps.DependencyReport{},
	})

	require.Contains(testInstance, output, "No git repositories found.")
	require.Contains(testInstance, output, "No dependency files found.")
	require.NotContains(testInstance, output, "```mermaid")
}

func TestTextRenderer(testInstance *testing.T) {
	output := renderReport(testInstance, report.FormatText, report.HealthReport{
		RootPath: testRootPathConstant,
		Command:  "scan",
		Git:      &gitscan.ScanReport{},
		System:   &system.Status{Message: "System monitoring not implemented yet!"},
		Notice:   "done",
	})

	require.Equal(testInstance, "  No git repositories found.\nSystem monitoring not implemented yet!\ndone\n", output)
}

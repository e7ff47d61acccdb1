package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/gitscan"
)

const (
	markdownTitleConstant                  = "devhealth Report"
	markdownGitHeadingConstant             = "Git Repositories"
	markdownDependenciesHeadingConstant    = "Dependencies"
	markdownSystemHeadingConstant          = "System"
	markdownPieChartTitleConstant          = "Repository Status"
	markdownNoRepositoriesConstant         = "No git repositories found."
	markdownNoDependenciesConstant         = "No dependency files found."
	markdownEmptyCellConstant              = "-"
	markdownCodeTemplateConstant           = "`%s`"
	markdownUnpushedMarkerConstant         = "🔄"
	markdownErrorsAlertTemplateConstant    = "%d repositories could not be inspected."
	markdownDirtyAlertTemplateConstant     = "%d repositories have uncommitted changes."
	markdownCleanAlertConstant             = "All repositories are clean."
	markdownParseErrorsTemplateConstant    = "%d dependency manifests could not be parsed."
	markdownProjectHeadingTemplateConstant = "%s (%d deps)"
)

// MarkdownRenderer writes reports as GitHub-flavoured Markdown.
type MarkdownRenderer struct{}

// Render writes the report header followed by one section per scan.
func (renderer MarkdownRenderer) Render(destination io.Writer, healthReport HealthReport) error {
	md := markdown.NewMarkdown(destination)

	md.H1(markdownTitleConstant)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root Path", fmt.Sprintf(markdownCodeTemplateConstant, healthReport.RootPath)},
			{"Command", healthReport.Command},
		},
	})
	md.PlainText("")

	if healthReport.Git != nil {
		renderer.writeGit(md, *healthReport.Git)
	}
	if healthReport.Dependencies != nil {
		renderer.writeDependencies(md, *healthReport.Dependencies)
	}
	if healthReport.System != nil {
		md.H2(markdownSystemHeadingConstant)
		md.PlainText("")
		md.Note(healthReport.System.Message)
		md.PlainText("")
	}
	if len(healthReport.Notice) > 0 {
		md.Note(healthReport.Notice)
		md.PlainText("")
	}

	return md.Build()
}

func (renderer MarkdownRenderer) writeGit(md *markdown.Markdown, scanReport gitscan.ScanReport) {
	md.H2(markdownGitHeadingConstant)
	md.PlainText("")

	if len(scanReport.Repositories) == 0 {
		md.PlainText(markdownNoRepositoriesConstant)
		md.PlainText("")
		return
	}

	summary := scanReport.Summary()
	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"✅ Clean", strconv.Itoa(summary.Clean)},
			{"⚠️ Dirty", strconv.Itoa(summary.Dirty)},
			{"❌ Errors", strconv.Itoa(summary.Errors)},
			{"🔄 Unpushed", strconv.Itoa(summary.Unpushed)},
			{"**Total**", "**" + strconv.Itoa(summary.Total) + "**"},
		},
	})
	md.PlainText("")

	chart := piechart.NewPieChart(io.Discard, piechart.WithTitle(markdownPieChartTitleConstant), piechart.WithShowData(true))
	for _, slice := range []struct {
		label string
		count int
	}{
		{label: "Clean", count: summary.Clean},
		{label: "Dirty", count: summary.Dirty},
		{label: "Errors", count: summary.Errors},
	} {
		if slice.count > 0 {
			chart.LabelAndIntValue(slice.label, uint64(slice.count))
		}
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")

	switch {
	case summary.Errors > 0:
		md.Cautionf(markdownErrorsAlertTemplateConstant, summary.Errors)
	case summary.Dirty > 0:
		md.Warningf(markdownDirtyAlertTemplateConstant, summary.Dirty)
	default:
		md.Tip(markdownCleanAlertConstant)
	}
	md.PlainText("")

	rows := make([][]string, 0, len(scanReport.Repositories))
	for _, record := range scanReport.Repositories {
		unpushed := markdownEmptyCellConstant
		if record.HasUnpushedCommits {
			unpushed = markdownUnpushedMarkerConstant
		}
		rows = append(rows, []string{
			gitscan.RepositoryDisplayName(record.Path),
			fmt.Sprintf(markdownCodeTemplateConstant, record.Branch),
			record.Status.String(),
			unpushed,
			fmt.Sprintf(markdownCodeTemplateConstant, record.Path),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Repository", "Branch", "Status", "Unpushed", "Path"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (renderer MarkdownRenderer) writeDependencies(md *markdown.Markdown, dependencyReport deps.DependencyReport) {
	md.H2(markdownDependenciesHeadingConstant)
	md.PlainText("")

	if len(dependencyReport.Projects) == 0 {
		md.PlainText(markdownNoDependenciesConstant)
		md.PlainText("")
		return
	}

	summary := dependencyReport.Summary()
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Total Projects", strconv.Itoa(summary.TotalProjects)},
			{"Total Dependencies", strconv.Itoa(summary.TotalDependencies)},
			{"Ecosystems", strconv.Itoa(len(summary.Ecosystems))},
			{"Errors", strconv.Itoa(summary.Errors)},
		},
	})
	md.PlainText("")

	ecosystemRows := make([][]string, 0, len(summary.Ecosystems))
	for _, ecosystemCount := range summary.Ecosystems {
		ecosystemRows = append(ecosystemRows, []string{
			ecosystemCount.Ecosystem.Icon() + " " + ecosystemCount.Ecosystem.DisplayName(),
			strconv.Itoa(ecosystemCount.Dependencies),
		})
	}
	md.Table(markdown.TableSet{Header: []string{"Ecosystem", "Dependencies"}, Rows: ecosystemRows})
	md.PlainText("")

	if summary.Errors > 0 {
		md.Warningf(markdownParseErrorsTemplateConstant, summary.Errors)
		md.PlainText("")
	}

	for _, project := range dependencyReport.Projects {
		md.H3(fmt.Sprintf(markdownProjectHeadingTemplateConstant, gitscan.RepositoryDisplayName(project.ProjectPath), len(project.Dependencies)))
		md.PlainText("")
		md.PlainText(fmt.Sprintf(markdownCodeTemplateConstant, project.ProjectPath))
		md.PlainText("")

		if len(project.Dependencies) > 0 {
			rows := make([][]string, 0, len(project.Dependencies))
			for _, dependency := range project.Dependencies {
				rows = append(rows, []string{
					dependency.Name,
					dependency.Version,
					dependency.Kind.Badge(),
					dependency.Ecosystem.DisplayName(),
				})
			}
			md.Table(markdown.TableSet{Header: []string{"Name", "Version", "Kind", "Ecosystem"}, Rows: rows})
			md.PlainText("")
		}
		if len(project.Errors) > 0 {
			md.BulletList(escapeBulletItems(project.Errors)...)
			md.PlainText("")
		}
	}
}

func escapeBulletItems(items []string) []string {
	escaped := make([]string, 0, len(items))
	for _, item := range items {
		escaped = append(escaped, strings.ReplaceAll(item, "\n", " "))
	}
	return escaped
}

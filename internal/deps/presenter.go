package deps

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/temirov/devhealth/internal/ui"
)

// DefaultListedDependencyLimit is the number of dependencies listed per ecosystem before the remainder is summarised.
const DefaultListedDependencyLimit = 8

const (
	noDependencyFilesMessageConstant   = "📦 No dependency files found"
	analysisHeaderTemplateConstant     = "📦 %s"
	analysisTitleTemplateConstant      = "Dependency Analysis (%d ecosystems)"
	summaryBoxTopConstant              = "┌─ Summary ─────────────────────────────────────────┐"
	summaryBoxBottomConstant           = "└───────────────────────────────────────────────────┘"
	summaryBoxRowTemplateConstant      = "│ %-20s %s %s\n"
	summaryBoxSeparatorConstant        = "│"
	summaryTotalProjectsLabelConstant  = "Total Projects"
	summaryTotalDepsLabelConstant      = "Total Dependencies"
	summaryEcosystemsLabelConstant     = "Ecosystems"
	summaryErrorsLabelConstant         = "Errors"
	summaryErrorsMarkerConstant        = " ❌"
	sectionDividerWidthConstant        = 50
	sectionDividerCharacterConstant    = "─"
	sectionMarkerConstant              = "▶"
	ecosystemBreakdownTitleConstant    = "Ecosystem Breakdown"
	projectDetailsTitleConstant        = "Project Details"
	ecosystemBreakdownTemplateConstant = "  %s %s %s dependencies\n"
	projectHeaderTemplateConstant      = "📂 %s %s dependencies"
	dependencyCountTemplateConstant    = "(%d deps)"
	ecosystemHeaderTemplateConstant    = "%s %s %s"
	dependencyLineTemplateConstant     = "%s %s %s %s"
	remainingTemplateConstant          = "... %d more dependencies"
	errorHeaderTemplateConstant        = "⚠️ %d Errors"
	treeIndentConstant                 = "  "
	treeBranchConnectorConstant        = "├─"
	treeLastConnectorConstant          = "└─"
	tipsHeadingConstant                = "💡 Tips:"
	tipLineTemplateConstant            = "  • %s: %s\n"
	unknownProjectNameConstant         = "unknown"
	sourcePathDisplayLimitConstant     = 35
	sourcePathTailLengthConstant       = 32
	sourcePathEllipsisConstant         = "..."
)

var dependencyTips = [][2]string{
	{"Check for updates", "Run package manager update commands"},
	{"Security scan", "Use tools like cargo audit, npm audit, or safety"},
	{"Clean unused deps", "Remove dependencies you're not using"},
}

// TextPresenter renders dependency reports for terminals.
type TextPresenter struct {
	// ListedDependencyLimit bounds the dependencies listed per ecosystem. Zero or less uses DefaultListedDependencyLimit.
	ListedDependencyLimit int
}

// Present writes the summary block, the ecosystem breakdown and the per-project tree to destination.
func (presenter TextPresenter) Present(destination io.Writer, report DependencyReport) error {
	palette := ui.NewPalette(destination)
	if len(report.Projects) == 0 {
		_, writeError := io.WriteString(destination, palette.Warning.Render(noDependencyFilesMessageConstant)+"\n")
		return writeError
	}

	summary := report.Summary()
	var builder strings.Builder

	title := fmt.Sprintf(analysisTitleTemplateConstant, len(summary.Ecosystems))
	builder.WriteString(fmt.Sprintf(analysisHeaderTemplateConstant, palette.Heading.Render(title)) + "\n")
	presenter.writeSummaryBox(&builder, palette, summary)

	if len(summary.Ecosystems) > 0 {
		writeSectionDivider(&builder, palette, ecosystemBreakdownTitleConstant)
		for _, ecosystemCount := range summary.Ecosystems {
			fmt.Fprintf(
				&builder,
				ecosystemBreakdownTemplateConstant,
				ecosystemCount.Ecosystem.Icon(),
				palette.Accent.Render(ecosystemCount.Ecosystem.DisplayName()),
				palette.Heading.Render(strconv.Itoa(ecosystemCount.Dependencies)),
			)
		}
	}

	writeSectionDivider(&builder, palette, projectDetailsTitleConstant)
	for projectIndex, project := range report.Projects {
		isLastProject := projectIndex == len(report.Projects)-1
		presenter.writeProject(&builder, palette, project, isLastProject)
		if !isLastProject {
			builder.WriteString("\n")
		}
	}

	if summary.TotalDependencies > 0 {
		builder.WriteString("\n" + palette.Heading.Render(tipsHeadingConstant) + "\n")
		for _, tip := range dependencyTips {
			fmt.Fprintf(&builder, tipLineTemplateConstant, palette.Accent.Render(tip[0]), tip[1])
		}
	}

	_, writeError := io.WriteString(destination, builder.String())
	return writeError
}

func (presenter TextPresenter) writeSummaryBox(builder *strings.Builder, palette ui.Palette, summary Summary) {
	errorsValue := strconv.Itoa(summary.Errors)
	if summary.Errors > 0 {
		errorsValue += summaryErrorsMarkerConstant
	}
	rows := [][2]string{
		{summaryTotalProjectsLabelConstant, strconv.Itoa(summary.TotalProjects)},
		{summaryTotalDepsLabelConstant, strconv.Itoa(summary.TotalDependencies)},
		{summaryEcosystemsLabelConstant, strconv.Itoa(len(summary.Ecosystems))},
		{summaryErrorsLabelConstant, errorsValue},
	}

	builder.WriteString(palette.Muted.Render(summaryBoxTopConstant) + "\n")
	for _, row := range rows {
		fmt.Fprintf(builder, summaryBoxRowTemplateConstant, row[0], palette.Muted.Render(summaryBoxSeparatorConstant), palette.Heading.Render(row[1]))
	}
	builder.WriteString(palette.Muted.Render(summaryBoxBottomConstant) + "\n")
}

func (presenter TextPresenter) writeProject(builder *strings.Builder, palette ui.Palette, project ProjectReport, isLastProject bool) {
	projectName := filepath.Base(filepath.Clean(project.ProjectPath))
	if len(project.ProjectPath) == 0 {
		projectName = unknownProjectNameConstant
	}
	projectHeader := fmt.Sprintf(
		projectHeaderTemplateConstant,
		palette.Heading.Render(projectName),
		palette.Muted.Render(fmt.Sprintf(dependencyCountTemplateConstant, len(project.Dependencies))),
	)
	writeTreeItem(builder, palette, projectHeader, isLastProject, 0)

	listedLimit := presenter.ListedDependencyLimit
	if listedLimit <= 0 {
		listedLimit = DefaultListedDependencyLimit
	}

	groups := make([][]Dependency, 0, len(project.Ecosystems))
	for _, ecosystem := range project.Ecosystems {
		if ecosystemDependencies := project.DependenciesOf(ecosystem); len(ecosystemDependencies) > 0 {
			groups = append(groups, ecosystemDependencies)
		}
	}

	for groupIndex, group := range groups {
		isLastGroup := groupIndex == len(groups)-1 && len(project.Errors) == 0
		ecosystem := group[0].Ecosystem
		ecosystemHeader := fmt.Sprintf(
			ecosystemHeaderTemplateConstant,
			ecosystem.Icon(),
			palette.Accent.Render(ecosystem.DisplayName()),
			palette.Muted.Render(fmt.Sprintf(dependencyCountTemplateConstant, len(group))),
		)
		writeTreeItem(builder, palette, ecosystemHeader, isLastGroup, 1)

		listed := group
		remaining := 0
		if len(group) > listedLimit {
			listed = group[:listedLimit]
			remaining = len(group) - listedLimit
		}
		for dependencyIndex, dependency := range listed {
			isLastDependency := dependencyIndex == len(listed)-1 && remaining == 0
			writeTreeItem(builder, palette, presenter.renderDependency(palette, dependency), isLastDependency, 2)
		}
		if remaining > 0 {
			writeTreeItem(builder, palette, palette.Muted.Render(fmt.Sprintf(remainingTemplateConstant, remaining)), true, 2)
		}
	}

	if len(project.Errors) > 0 {
		writeTreeItem(builder, palette, palette.Failure.Render(fmt.Sprintf(errorHeaderTemplateConstant, len(project.Errors))), true, 1)
		for errorIndex, projectError := range project.Errors {
			writeTreeItem(builder, palette, palette.Failure.Render(projectError), errorIndex == len(project.Errors)-1, 2)
		}
	}
}

func (presenter TextPresenter) renderDependency(palette ui.Palette, dependency Dependency) string {
	badgeStyle := palette.Success
	switch dependency.Kind {
	case DependencyKindDevelopment:
		badgeStyle = palette.Warning
	case DependencyKindBuild, DependencyKindOptional:
		badgeStyle = palette.Accent
	}
	return fmt.Sprintf(
		dependencyLineTemplateConstant,
		palette.Heading.Render(dependency.Name),
		palette.Success.Render(dependency.Version),
		badgeStyle.Render("["+dependency.Kind.Badge()+"]"),
		palette.Muted.Render(shortenSourcePath(dependency.SourceFile)),
	)
}

func shortenSourcePath(sourceFile string) string {
	runes := []rune(sourceFile)
	if len(runes) <= sourcePathDisplayLimitConstant {
		return sourceFile
	}
	return sourcePathEllipsisConstant + string(runes[len(runes)-sourcePathTailLengthConstant:])
}

func writeSectionDivider(builder *strings.Builder, palette ui.Palette, title string) {
	divider := palette.Muted.Render(strings.Repeat(sectionDividerCharacterConstant, sectionDividerWidthConstant))
	builder.WriteString("\n" + divider + "\n")
	builder.WriteString(palette.Accent.Render(sectionMarkerConstant) + " " + palette.Heading.Render(title) + "\n")
	builder.WriteString(divider + "\n")
}

func writeTreeItem(builder *strings.Builder, palette ui.Palette, content string, isLast bool, level int) {
	connector := treeBranchConnectorConstant
	if isLast {
		connector = treeLastConnectorConstant
	}
	builder.WriteString(strings.Repeat(treeIndentConstant, level) + palette.Muted.Render(connector) + " " + content + "\n")
}

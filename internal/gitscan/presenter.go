package gitscan

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/temirov/devhealth/internal/ui"
)

const (
	noRepositoriesMessageConstant     = "  No git repositories found.\n"
	summaryHeadingConstant            = "📊 Git Repository Summary:"
	totalRepositoriesTemplateConstant = "  Total repositories: %d\n"
	statusCountsTemplateConstant      = "  Clean: %d, Dirty: %d, Errors: %d\n"
	detailsHeadingConstant            = "📁 Repository Details:"
	repositoryLineTemplateConstant    = "  %s %s %s%s\n"
	cleanLabelConstant                = "✅ Clean"
	dirtyLabelConstant                = "⚠️  Dirty"
	errorLabelTemplateConstant        = "❌ Error: %s"
	unpushedMarkerConstant            = " 🔄"
	branchTemplateConstant            = "(%s)"
)

// TextPresenter renders scan reports for terminals.
type TextPresenter struct{}

// Present writes the summary block and one line per repository to destination.
func (presenter TextPresenter) Present(destination io.Writer, report ScanReport) error {
	if len(report.Repositories) == 0 {
		_, writeError := io.WriteString(destination, noRepositoriesMessageConstant)
		return writeError
	}

	palette := ui.NewPalette(destination)
	summary := report.Summary()

	var builder strings.Builder
	builder.WriteString("\n" + palette.Heading.Render(summaryHeadingConstant) + "\n")
	fmt.Fprintf(&builder, totalRepositoriesTemplateConstant, summary.Total)
	fmt.Fprintf(&builder, statusCountsTemplateConstant, summary.Clean, summary.Dirty, summary.Errors)
	builder.WriteString("\n" + palette.Heading.Render(detailsHeadingConstant) + "\n")

	for _, record := range report.Repositories {
		unpushedMarker := ""
		if record.HasUnpushedCommits {
			unpushedMarker = palette.Accent.Render(unpushedMarkerConstant)
		}
		fmt.Fprintf(
			&builder,
			repositoryLineTemplateConstant,
			presenter.renderStatus(palette, record.Status),
			RepositoryDisplayName(record.Path),
			palette.Muted.Render(fmt.Sprintf(branchTemplateConstant, record.Branch)),
			unpushedMarker,
		)
	}

	_, writeError := io.WriteString(destination, builder.String())
	return writeError
}

func (presenter TextPresenter) renderStatus(palette ui.Palette, status RepositoryStatus) string {
	switch status.Kind {
	case StatusKindClean:
		return palette.Success.Render(cleanLabelConstant)
	case StatusKindDirty:
		return palette.Warning.Render(dirtyLabelConstant)
	default:
		return palette.Failure.Render(fmt.Sprintf(errorLabelTemplateConstant, status.Message))
	}
}

// RepositoryDisplayName returns the last path segment of a repository path.
func RepositoryDisplayName(repositoryPath string) string {
	return filepath.Base(filepath.Clean(repositoryPath))
}

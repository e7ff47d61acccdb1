package gitscan

import "fmt"

// StatusKind enumerates repository health states.
type StatusKind string

// Supported status kinds.
const (
	StatusKindClean StatusKind = StatusKind("clean")
	StatusKindDirty StatusKind = StatusKind("dirty")
	StatusKindError StatusKind = StatusKind("error")
)

// UnknownBranch is reported for repositories whose branch could not be determined.
const UnknownBranch = "unknown"

const errorStatusTemplateConstant = "error: %s"

// RepositoryStatus is the health of one repository. Message is set only for StatusKindError.
type RepositoryStatus struct {
	Kind    StatusKind `json:"kind" yaml:"kind"`
	Message string     `json:"message,omitempty" yaml:"message,omitempty"`
}

// CleanStatus reports a repository without uncommitted changes.
func CleanStatus() RepositoryStatus {
	return RepositoryStatus{Kind: StatusKindClean}
}

// DirtyStatus reports a repository with uncommitted changes.
func DirtyStatus() RepositoryStatus {
	return RepositoryStatus{Kind: StatusKindDirty}
}

// ErrorStatus reports a repository that could not be inspected.
func ErrorStatus(message string) RepositoryStatus {
	return RepositoryStatus{Kind: StatusKindError, Message: message}
}

// String renders the status kind, including the message for errors.
func (status RepositoryStatus) String() string {
	if status.Kind == StatusKindError {
		return fmt.Sprintf(errorStatusTemplateConstant, status.Message)
	}
	return string(status.Kind)
}

// RepositoryRecord is the inspection result for one repository root.
type RepositoryRecord struct {
	Path                  string           `json:"path" yaml:"path"`
	Status                RepositoryStatus `json:"status" yaml:"status"`
	Branch                string           `json:"branch" yaml:"branch"`
	HasUncommittedChanges bool             `json:"has_uncommitted_changes" yaml:"has_uncommitted_changes"`
	HasUnpushedCommits    bool             `json:"has_unpushed_commits" yaml:"has_unpushed_commits"`
}

// ScanReport lists repository records in discovery order.
type ScanReport struct {
	Repositories []RepositoryRecord `json:"repositories" yaml:"repositories"`
}

// Summary aggregates status counts across a report.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Clean    int `json:"clean" yaml:"clean"`
	Dirty    int `json:"dirty" yaml:"dirty"`
	Errors   int `json:"errors" yaml:"errors"`
	Unpushed int `json:"unpushed" yaml:"unpushed"`
}

// Summarize counts records by status. Unpushed counts records with unpushed commits regardless of status.
func Summarize(records []RepositoryRecord) Summary {
	summary := Summary{Total: len(records)}
	for _, record := range records {
		switch record.Status.Kind {
		case StatusKindClean:
			summary.Clean++
		case StatusKindDirty:
			summary.Dirty++
		case StatusKindError:
			summary.Errors++
		}
		if record.HasUnpushedCommits {
			summary.Unpushed++
		}
	}
	return summary
}

// Summary aggregates the records of the report.
func (report ScanReport) Summary() Summary {
	return Summarize(report.Repositories)
}

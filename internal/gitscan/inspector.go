package gitscan

import (
	"context"

	"go.uber.org/zap"
)

const (
	inspectionFailedLogMessageConstant     = "repository inspection failed"
	unpushedCheckSkippedLogMessageConstant = "unpushed commit check unavailable"
	repositoryInspectedLogMessageConstant  = "repository inspected"
	logFieldRepositoryConstant             = "repository"
	logFieldBranchConstant                 = "branch"
	logFieldStatusConstant                 = "status"
	logFieldUnpushedConstant               = "unpushed"
)

// RepositoryStateReader answers the git queries needed to inspect one repository.
type RepositoryStateReader interface {
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	HasUnpushedCommits(executionContext context.Context, repositoryPath string, branch string) (bool, error)
}

// Inspector derives a RepositoryRecord for a single repository.
type Inspector struct {
	stateReader RepositoryStateReader
	logger      *zap.Logger
}

// NewInspector constructs an Inspector. A nil logger disables logging.
func NewInspector(stateReader RepositoryStateReader, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{stateReader: stateReader, logger: logger}
}

// Inspect queries the branch, working tree status, and unpushed commits of repositoryPath.
// Branch or status failures produce an error record with branch "unknown" and both flags
// false. Failures of the unpushed check, such as a missing origin branch, count as no
// unpushed commits.
func (inspector *Inspector) Inspect(executionContext context.Context, repositoryPath string) RepositoryRecord {
	branch, branchError := inspector.stateReader.CurrentBranch(executionContext, repositoryPath)
	if branchError != nil {
		return inspector.errorRecord(repositoryPath, branchError)
	}

	hasUncommittedChanges, statusError := inspector.stateReader.HasUncommittedChanges(executionContext, repositoryPath)
	if statusError != nil {
		return inspector.errorRecord(repositoryPath, statusError)
	}

	hasUnpushedCommits, unpushedError := inspector.stateReader.HasUnpushedCommits(executionContext, repositoryPath, branch)
	if unpushedError != nil {
		inspector.logger.Debug(unpushedCheckSkippedLogMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.Error(unpushedError))
		hasUnpushedCommits = false
	}

	status := CleanStatus()
	if hasUncommittedChanges {
		status = DirtyStatus()
	}

	record := RepositoryRecord{
		Path:                  repositoryPath,
		Status:                status,
		Branch:                branch,
		HasUncommittedChanges: hasUncommittedChanges,
		HasUnpushedCommits:    hasUnpushedCommits,
	}
	inspector.logger.Debug(
		repositoryInspectedLogMessageConstant,
		zap.String(logFieldRepositoryConstant, repositoryPath),
		zap.String(logFieldBranchConstant, branch),
		zap.String(logFieldStatusConstant, status.String()),
		zap.Bool(logFieldUnpushedConstant, hasUnpushedCommits),
	)
	return record
}

func (inspector *Inspector) errorRecord(repositoryPath string, inspectionError error) RepositoryRecord {
	inspector.logger.Warn(inspectionFailedLogMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.Error(inspectionError))
	return RepositoryRecord{
		Path:   repositoryPath,
		Status: ErrorStatus(inspectionError.Error()),
		Branch: UnknownBranch,
	}
}

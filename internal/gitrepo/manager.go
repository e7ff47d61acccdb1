package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/devhealth/internal/execshell"
)

const (
	gitSymbolicRefSubcommandConstant   = "symbolic-ref"
	gitShortFlagConstant               = "--short"
	gitRevParseSubcommandConstant      = "rev-parse"
	gitAbbrevRefFlagConstant           = "--abbrev-ref"
	gitHeadReferenceConstant           = "HEAD"
	gitStatusSubcommandConstant        = "status"
	gitPorcelainFlagConstant           = "--porcelain"
	gitLogSubcommandConstant           = "log"
	gitOnelineFlagConstant             = "--oneline"
	outgoingRangeTemplateConstant      = "%s/%s..HEAD"
	currentBranchErrorTemplateConstant = "unable to determine current branch: %w"
	statusErrorTemplateConstant        = "unable to read working tree status: %w"
	outgoingErrorTemplateConstant      = "unable to compare with %s/%s: %w"
	emptyBranchErrorMessageConstant    = "git reported an empty branch name"
)

// DefaultRemoteName is the remote consulted for unpushed commits.
const DefaultRemoteName = "origin"

// ErrEmptyBranchName indicates that git returned no branch name.
var ErrEmptyBranchName = errors.New(emptyBranchErrorMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager inspects repositories through a GitExecutor.
type RepositoryManager struct {
	executor   GitExecutor
	remoteName string
}

// ErrGitExecutorNotConfigured indicates that no executor was supplied.
var ErrGitExecutorNotConfigured = errors.New("git executor not configured")

// NewRepositoryManager constructs a RepositoryManager that compares against DefaultRemoteName.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor, remoteName: DefaultRemoteName}, nil
}

// CurrentBranch returns the checked-out branch name. Unborn branches resolve to their configured
// name; a detached HEAD resolves to "HEAD".
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	symbolicResult, symbolicError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitSymbolicRefSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if symbolicError == nil {
		return nonEmptyBranch(symbolicResult.StandardOutput)
	}

	var commandFailure execshell.CommandFailedError
	if !errors.As(symbolicError, &commandFailure) {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, symbolicError)
	}

	revisionResult, revisionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if revisionError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, revisionError)
	}
	return nonEmptyBranch(revisionResult.StandardOutput)
}

// HasUncommittedChanges reports whether porcelain status lists any entry, including untracked files.
func (manager *RepositoryManager) HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	statusResult, statusError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if statusError != nil {
		return false, fmt.Errorf(statusErrorTemplateConstant, statusError)
	}
	return len(strings.TrimSpace(statusResult.StandardOutput)) > 0, nil
}

// HasUnpushedCommits reports whether HEAD has commits that <remote>/<branch> lacks.
// A missing remote-tracking branch surfaces as an error.
func (manager *RepositoryManager) HasUnpushedCommits(executionContext context.Context, repositoryPath string, branch string) (bool, error) {
	logResult, logError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, gitOnelineFlagConstant, fmt.Sprintf(outgoingRangeTemplateConstant, manager.remoteName, branch)},
		WorkingDirectory: repositoryPath,
	})
	if logError != nil {
		return false, fmt.Errorf(outgoingErrorTemplateConstant, manager.remoteName, branch, logError)
	}
	return len(strings.TrimSpace(logResult.StandardOutput)) > 0, nil
}

func nonEmptyBranch(output string) (string, error) {
	branch := strings.TrimSpace(output)
	if len(branch) == 0 {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, ErrEmptyBranchName)
	}
	return branch, nil
}

// Package dependencies supplies default collaborators for repository scanning when callers provide none.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/devhealth/internal/execshell"
	"github.com/temirov/devhealth/internal/gitrepo"
	"github.com/temirov/devhealth/internal/repos/discovery"
)

// ResolveRepositoryLocator returns the provided locator or a filesystem-backed default.
func ResolveRepositoryLocator(existing discovery.RepositoryLocator) discovery.RepositoryLocator {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryLocator()
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default reporting to observer.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), execshell.WithCommandEventObserver(observer))
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing *gitrepo.RepositoryManager, executor gitrepo.GitExecutor) (*gitrepo.RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}

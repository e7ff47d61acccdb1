package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/devhealth/internal/execshell"
	"github.com/temirov/devhealth/internal/gitrepo"
	"github.com/temirov/devhealth/internal/repos/dependencies"
	"github.com/temirov/devhealth/internal/repos/discovery"
)

type stubRepositoryLocator struct{}

func (stubRepositoryLocator) LocateRepositories(string) ([]string, error) {
	return nil, nil
}

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func TestResolveRepositoryLocator(testInstance *testing.T) {
	existing := stubRepositoryLocator{}
	require.Equal(testInstance, existing, dependencies.ResolveRepositoryLocator(existing))
	require.IsType(testInstance, &discovery.FilesystemRepositoryLocator{}, dependencies.ResolveRepositoryLocator(nil))
}

func TestResolveGitExecutor(testInstance *testing.T) {
	existing := stubGitExecutor{}
	resolvedExisting, existingError := dependencies.ResolveGitExecutor(existing, nil, nil)
	require.NoError(testInstance, existingError)
	require.Equal(testInstance, existing, resolvedExisting)

	resolvedDefault, defaultError := dependencies.ResolveGitExecutor(nil, zap.NewNop(), nil)
	require.NoError(testInstance, defaultError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, resolvedDefault)
}

func TestResolveGitRepositoryManager(testInstance *testing.T) {
	existing, creationError := gitrepo.NewRepositoryManager(stubGitExecutor{})
	require.NoError(testInstance, creationError)

	resolvedExisting, existingError := dependencies.ResolveGitRepositoryManager(existing, nil)
	require.NoError(testInstance, existingError)
	require.Same(testInstance, existing, resolvedExisting)

	_, missingExecutorError := dependencies.ResolveGitRepositoryManager(nil, nil)
	require.ErrorIs(testInstance, missingExecutorError, gitrepo.ErrGitExecutorNotConfigured)
}

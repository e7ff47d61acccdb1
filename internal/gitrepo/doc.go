// Package gitrepo answers read-only questions about a single git repository.
//
// RepositoryManager resolves the current branch, reports whether the working
// tree has uncommitted changes, and checks for commits missing from the
// remote-tracking branch, all through a GitExecutor.
package gitrepo

// Package discovery locates git repositories beneath a directory tree.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	gitMetadataEntryNameConstant          = ".git"
	rootInspectionErrorTemplateConstant   = "unable to read scan root %s: %w"
	rootNotDirectoryErrorTemplateConstant = "scan root %s: %w"
)

// ErrRootNotDirectory indicates that the scan root exists but is not a directory.
var ErrRootNotDirectory = errors.New("not a directory")

// RepositoryLocator finds repository roots beneath a directory.
type RepositoryLocator interface {
	LocateRepositories(root string) ([]string, error)
}

// FilesystemRepositoryLocator locates git repositories on disk with filepath.WalkDir.
type FilesystemRepositoryLocator struct{}

// NewFilesystemRepositoryLocator constructs a locator backed by filepath.WalkDir.
func NewFilesystemRepositoryLocator() *FilesystemRepositoryLocator {
	return &FilesystemRepositoryLocator{}
}

// LocateRepositories returns every directory under root that holds a .git directory or .git file,
// in traversal order and without duplicates. Symbolic links are never followed and .git
// directories are not descended into. Unreadable entries below root are skipped; only a
// failure to read root itself is returned.
func (locator *FilesystemRepositoryLocator) LocateRepositories(root string) ([]string, error) {
	walkRoot, rootError := ResolveWalkRoot(root)
	if rootError != nil {
		return nil, rootError
	}

	seen := make(map[string]struct{})
	repositories := make([]string, 0)

	walkError := filepath.WalkDir(walkRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == walkRoot {
				return fmt.Errorf(rootInspectionErrorTemplateConstant, root, walkError)
			}
			return nil
		}

		if directoryEntry.Name() != gitMetadataEntryNameConstant || path == walkRoot {
			return nil
		}

		entryType := directoryEntry.Type()
		if !entryType.IsDir() && !entryType.IsRegular() {
			return nil
		}

		repositoryPath := PresentedPath(root, walkRoot, filepath.Dir(path))
		if _, alreadySeen := seen[repositoryPath]; !alreadySeen {
			seen[repositoryPath] = struct{}{}
			repositories = append(repositories, repositoryPath)
		}

		if entryType.IsDir() {
			return fs.SkipDir
		}
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	return repositories, nil
}

// ResolveWalkRoot validates root and resolves it when root itself is a symbolic link to a directory.
func ResolveWalkRoot(root string) (string, error) {
	rootInfo, statError := os.Stat(root)
	if statError != nil {
		return "", fmt.Errorf(rootInspectionErrorTemplateConstant, root, statError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(rootNotDirectoryErrorTemplateConstant, root, ErrRootNotDirectory)
	}

	linkInfo, lstatError := os.Lstat(root)
	if lstatError != nil {
		return "", fmt.Errorf(rootInspectionErrorTemplateConstant, root, lstatError)
	}
	if linkInfo.Mode()&fs.ModeSymlink == 0 {
		return root, nil
	}

	resolvedRoot, resolveError := filepath.EvalSymlinks(root)
	if resolveError != nil {
		return "", fmt.Errorf(rootInspectionErrorTemplateConstant, root, resolveError)
	}
	return resolvedRoot, nil
}

// PresentedPath expresses a path found under walkRoot relative to the root the caller supplied.
func PresentedPath(root string, walkRoot string, foundPath string) string {
	if root == walkRoot {
		return foundPath
	}
	relativePath, relativeError := filepath.Rel(walkRoot, foundPath)
	if relativeError != nil {
		return foundPath
	}
	return filepath.Join(root, relativePath)
}

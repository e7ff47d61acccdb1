// Package pathutils resolves user-supplied scan roots.
package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant               = "~"
	tildeForwardSlashPrefixConstant   = "~/"
	absolutePathErrorTemplateConstant = "unable to resolve path %q: %w"
	emptyPathReplacementConstant      = "."
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts user home shortcuts to absolute paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves a leading "~" or "~/" to the user's home directory. Other paths are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	switch {
	case candidatePath == tildeSymbolConstant:
		return homeDirectory
	case strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(candidatePath, tildeWithPathSeparatorPrefix):
		return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeWithPathSeparatorPrefix))
	default:
		// "~user" forms are left for the shell.
		return candidatePath
	}
}

// Resolve expands home shortcuts and returns a cleaned absolute path. An empty path resolves to the working directory.
func (expander *HomeExpander) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		trimmedPath = emptyPathReplacementConstant
	}

	absolutePath, absoluteError := filepath.Abs(expander.Expand(trimmedPath))
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathErrorTemplateConstant, candidatePath, absoluteError)
	}
	return absolutePath, nil
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}

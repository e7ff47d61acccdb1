package filesystem

import (
	"io/fs"
	"os"
)

// FileSystem exposes the read-only primitives used while inspecting project trees.
type FileSystem interface {
	Lstat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem implements FileSystem using the operating system primitives.
type OSFileSystem struct{}

// Lstat retrieves file metadata without following a trailing symbolic link.
func (OSFileSystem) Lstat(path string) (fs.FileInfo, error) {
	return os.Lstat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

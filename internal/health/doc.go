// Package health provides the check and scan commands. They inspect git repositories,
// dependency manifests and system resources beneath a root directory.
package health

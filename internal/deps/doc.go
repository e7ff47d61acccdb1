// Package deps finds dependency manifests beneath a directory tree and parses the
// dependencies they declare for Rust, Node.js, Python and Go projects.
package deps

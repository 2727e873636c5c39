package dirstore

import "github.com/calvinalkan/dirstore/internal/fs"

// NewWithFS constructs a Directory over an injected filesystem so
// tests can count disk touches and inject failures.
func NewWithFS(path string, fsys fs.FS) (*Directory, error) {
	return newDirectory(path, fsys)
}

// NamedPath exposes the named-constructor path derivation to tests.
func NamedPath(base, name string) string {
	return namedPath(base, name)
}

// FileName exposes key-to-file mapping to tests.
func FileName(key string) string {
	return fileName(key)
}

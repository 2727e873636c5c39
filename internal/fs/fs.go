// Package fs provides the filesystem seam for the dirstore core.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the store needs
//   - [Real]: production implementation using the [os] package
//
// Tests substitute their own [FS] to count disk touches or inject
// failures without involving the real filesystem.
package fs

import "os"

// FS defines the filesystem operations used by a keyed store: whole
// file reads, atomic whole-file writes, and directory management.
//
// All methods mirror their [os] package equivalents except
// [FS.WriteFileAtomic], which must never let a concurrent reader
// observe a partially written file.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically via a temp
	// file plus rename. Readers see either the old content or the
	// new content, never a prefix of the new one.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries sorted by
	// name. See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error

	// RemoveAll deletes a path and any children. No error if the
	// path doesn't exist. See [os.RemoveAll].
	RemoveAll(path string) error
}
